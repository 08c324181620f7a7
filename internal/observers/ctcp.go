package observers

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalnet/ircnotify/internal/irc"
)

// CTCPResponder answers CTCP queries sent to us
type CTCPResponder struct {
	UserInfo string
	Finger   string

	now func() time.Time
}

var _ irc.CTCPListener = (*CTCPResponder)(nil)

func (r *CTCPResponder) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// only answer queries addressed to us, not to a channel
func toMe(c irc.Conn, target string) bool {
	return strings.EqualFold(target, c.CurrentNick())
}

func (r *CTCPResponder) OnVersion(c irc.Conn, nick, target, _ string) {
	if !toMe(c, target) {
		return
	}
	reply := fmt.Sprintf("ircnotify %s (built %s, commit %s)", irc.Version, irc.BuildDate, irc.GitCommit)
	c.CTCPReply(nick, "VERSION", reply)
}

func (r *CTCPResponder) OnUserInfo(c irc.Conn, nick, target, _ string) {
	if !toMe(c, target) || r.UserInfo == "" {
		return
	}
	c.CTCPReply(nick, "USERINFO", r.UserInfo)
}

func (r *CTCPResponder) OnClientInfo(c irc.Conn, nick, target, _ string) {
	if !toMe(c, target) {
		return
	}
	c.CTCPReply(nick, "CLIENTINFO", "ACTION CLIENTINFO FINGER PING TIME USERINFO VERSION")
}

// OnPing echoes the payload back so the requester can measure lag
func (r *CTCPResponder) OnPing(c irc.Conn, nick, target, params string) {
	if !toMe(c, target) {
		return
	}
	c.CTCPReply(nick, "PING", params)
}

func (r *CTCPResponder) OnTime(c irc.Conn, nick, target, _ string) {
	if !toMe(c, target) {
		return
	}
	c.CTCPReply(nick, "TIME", r.clock().UTC().Format(time.RFC1123))
}

func (r *CTCPResponder) OnFinger(c irc.Conn, nick, target, _ string) {
	if !toMe(c, target) || r.Finger == "" {
		return
	}
	c.CTCPReply(nick, "FINGER", r.Finger)
}
