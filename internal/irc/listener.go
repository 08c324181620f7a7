package irc

// Conn is the connection handle passed to every handler. Handlers may use it
// to query state or issue commands; sending from inside a handler is
// supported.
type Conn interface {
	CurrentNick() string
	Server() (host string, port int)
	Channels() []string
	Send(command string, params ...string) error
	Privmsg(target, message string) error
	Notice(target, message string) error
	Action(target, action string) error
	CTCPReply(target, tag, reply string) error
	Join(channel string) error
	Part(channel, message string) error
	SetNick(nick string)
}

// LifecycleListener observes the connection itself.
type LifecycleListener interface {
	OnPings(c Conn, data string)
	OnConnect(c Conn, server string, port int)
	OnDisconnect(c Conn, server string, port int)
}

// ServerListener observes server replies.
type ServerListener interface {
	OnMOTDStart(c Conn, server, target, data string)
	OnMOTD(c Conn, server, target, data string)
	OnEndOfMOTD(c Conn, server, target, data string)
	OnServerMessage(c Conn, server string, code int, target, data string)
}

// ChannelListener observes channel membership and channel state.
type ChannelListener interface {
	OnInvite(c Conn, nick, who, channel string)
	OnKicks(c Conn, channel, nick, who, reason string)
	OnQuits(c Conn, channel, nick, reason string)
	OnNickChanges(c Conn, nick, newNick string)
	OnJoins(c Conn, channel, nick string)
	OnParts(c Conn, channel, nick, message string)
	OnModeChanges(c Conn, nick, target, mode, params string)
	OnTopic(c Conn, nick, channel, topic string)
}

// MessageListener observes chat traffic.
type MessageListener interface {
	OnPrivateMessage(c Conn, nick, target, message string)
	OnNotice(c Conn, nick, target, message string)
	OnAction(c Conn, nick, target, action string)
}

// CTCPListener observes CTCP queries.
type CTCPListener interface {
	OnVersion(c Conn, nick, target, params string)
	OnUserInfo(c Conn, nick, target, params string)
	OnClientInfo(c Conn, nick, target, params string)
	OnPing(c Conn, nick, target, params string)
	OnTime(c Conn, nick, target, params string)
	OnFinger(c Conn, nick, target, params string)
}

// Listener is the full capability set.
type Listener interface {
	LifecycleListener
	ServerListener
	ChannelListener
	MessageListener
	CTCPListener
}

// NopListener implements Listener with empty handlers. Embed it and override
// the handlers you need.
type NopListener struct{}

var _ Listener = NopListener{}

func (NopListener) OnPings(Conn, string)                               {}
func (NopListener) OnConnect(Conn, string, int)                        {}
func (NopListener) OnDisconnect(Conn, string, int)                     {}
func (NopListener) OnMOTDStart(Conn, string, string, string)           {}
func (NopListener) OnMOTD(Conn, string, string, string)                {}
func (NopListener) OnEndOfMOTD(Conn, string, string, string)           {}
func (NopListener) OnServerMessage(Conn, string, int, string, string)  {}
func (NopListener) OnInvite(Conn, string, string, string)              {}
func (NopListener) OnKicks(Conn, string, string, string, string)       {}
func (NopListener) OnQuits(Conn, string, string, string)               {}
func (NopListener) OnNickChanges(Conn, string, string)                 {}
func (NopListener) OnJoins(Conn, string, string)                       {}
func (NopListener) OnParts(Conn, string, string, string)               {}
func (NopListener) OnModeChanges(Conn, string, string, string, string) {}
func (NopListener) OnTopic(Conn, string, string, string)               {}
func (NopListener) OnPrivateMessage(Conn, string, string, string)      {}
func (NopListener) OnNotice(Conn, string, string, string)              {}
func (NopListener) OnAction(Conn, string, string, string)              {}
func (NopListener) OnVersion(Conn, string, string, string)             {}
func (NopListener) OnUserInfo(Conn, string, string, string)            {}
func (NopListener) OnClientInfo(Conn, string, string, string)          {}
func (NopListener) OnPing(Conn, string, string, string)                {}
func (NopListener) OnTime(Conn, string, string, string)                {}
func (NopListener) OnFinger(Conn, string, string, string)              {}

// implementsAny reports whether o implements at least one listener group.
func implementsAny(o any) bool {
	switch o.(type) {
	case LifecycleListener, ServerListener, ChannelListener, MessageListener, CTCPListener:
		return true
	}
	return false
}
