// Package observers holds the listeners the ircnotify daemon can register on
// its connection.
package observers

import (
	"log"

	"github.com/dalnet/ircnotify/internal/irc"
)

// Logger writes one log line per event
type Logger struct {
	Logger *log.Logger // nil uses the standard logger
}

var _ irc.Listener = (*Logger)(nil)

func (l *Logger) printf(format string, args ...any) {
	if l.Logger != nil {
		l.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (l *Logger) OnPings(_ irc.Conn, data string) {
	l.printf("PING %s", data)
}

func (l *Logger) OnConnect(_ irc.Conn, server string, port int) {
	l.printf("Connected to %s:%d", server, port)
}

func (l *Logger) OnDisconnect(_ irc.Conn, server string, port int) {
	l.printf("Disconnecting from %s:%d", server, port)
}

func (l *Logger) OnMOTDStart(_ irc.Conn, server, _, data string) {
	l.printf("[%s] %s", server, data)
}

func (l *Logger) OnMOTD(_ irc.Conn, server, _, data string) {
	l.printf("[%s] %s", server, data)
}

func (l *Logger) OnEndOfMOTD(_ irc.Conn, server, _, data string) {
	l.printf("[%s] %s", server, data)
}

func (l *Logger) OnServerMessage(_ irc.Conn, server string, code int, target, data string) {
	l.printf("[%s] %03d %s %s", server, code, target, data)
}

func (l *Logger) OnInvite(_ irc.Conn, nick, who, channel string) {
	l.printf("%s invited %s to %s", nick, who, channel)
}

func (l *Logger) OnKicks(_ irc.Conn, channel, nick, who, reason string) {
	l.printf("%s kicked %s from %s (%s)", nick, who, channel, reason)
}

func (l *Logger) OnQuits(_ irc.Conn, channel, nick, reason string) {
	l.printf("%s quit %s (%s)", nick, channel, reason)
}

func (l *Logger) OnNickChanges(_ irc.Conn, nick, newNick string) {
	l.printf("%s is now known as %s", nick, newNick)
}

func (l *Logger) OnJoins(_ irc.Conn, channel, nick string) {
	l.printf("%s joined %s", nick, channel)
}

func (l *Logger) OnParts(_ irc.Conn, channel, nick, message string) {
	l.printf("%s left %s (%s)", nick, channel, message)
}

func (l *Logger) OnModeChanges(_ irc.Conn, nick, target, mode, params string) {
	l.printf("%s sets mode %s %s %s", nick, target, mode, params)
}

func (l *Logger) OnTopic(_ irc.Conn, nick, channel, topic string) {
	l.printf("%s changed the topic of %s to %q", nick, channel, topic)
}

func (l *Logger) OnPrivateMessage(_ irc.Conn, nick, target, message string) {
	l.printf("%s <%s> %s", target, nick, message)
}

func (l *Logger) OnNotice(_ irc.Conn, nick, target, message string) {
	l.printf("%s -%s- %s", target, nick, message)
}

func (l *Logger) OnAction(_ irc.Conn, nick, target, action string) {
	l.printf("%s * %s %s", target, nick, action)
}

func (l *Logger) OnVersion(_ irc.Conn, nick, target, _ string) {
	l.printf("CTCP VERSION from %s to %s", nick, target)
}

func (l *Logger) OnUserInfo(_ irc.Conn, nick, target, _ string) {
	l.printf("CTCP USERINFO from %s to %s", nick, target)
}

func (l *Logger) OnClientInfo(_ irc.Conn, nick, target, _ string) {
	l.printf("CTCP CLIENTINFO from %s to %s", nick, target)
}

func (l *Logger) OnPing(_ irc.Conn, nick, target, _ string) {
	l.printf("CTCP PING from %s to %s", nick, target)
}

func (l *Logger) OnTime(_ irc.Conn, nick, target, _ string) {
	l.printf("CTCP TIME from %s to %s", nick, target)
}

func (l *Logger) OnFinger(_ irc.Conn, nick, target, _ string) {
	l.printf("CTCP FINGER from %s to %s", nick, target)
}
