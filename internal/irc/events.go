package irc

// Kind identifies a taxonomy case
type Kind int

const (
	KindPings Kind = iota + 1
	KindConnect
	KindDisconnect
	KindMOTDStart
	KindMOTD
	KindEndOfMOTD
	KindServerMessage
	KindInvite
	KindKick
	KindQuit
	KindNickChange
	KindJoin
	KindPart
	KindModeChange
	KindPrivateMessage
	KindTopic
	KindNotice
	KindAction
	KindVersion
	KindUserInfo
	KindClientInfo
	KindCTCPPing
	KindTime
	KindFinger
)

var kindNames = map[Kind]string{
	KindPings:          "pings",
	KindConnect:        "connect",
	KindDisconnect:     "disconnect",
	KindMOTDStart:      "motd-start",
	KindMOTD:           "motd",
	KindEndOfMOTD:      "end-of-motd",
	KindServerMessage:  "server-message",
	KindInvite:         "invite",
	KindKick:           "kick",
	KindQuit:           "quit",
	KindNickChange:     "nick-change",
	KindJoin:           "join",
	KindPart:           "part",
	KindModeChange:     "mode-change",
	KindPrivateMessage: "private-message",
	KindTopic:          "topic",
	KindNotice:         "notice",
	KindAction:         "action",
	KindVersion:        "ctcp-version",
	KindUserInfo:       "ctcp-userinfo",
	KindClientInfo:     "ctcp-clientinfo",
	KindCTCPPing:       "ctcp-ping",
	KindTime:           "ctcp-time",
	KindFinger:         "ctcp-finger",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one decoded protocol occurrence. The set of implementations is
// closed: only the types in this file satisfy it.
//
// Events are values and are never modified while being delivered.
type Event interface {
	Kind() Kind
	// deliver invokes the matching handler if o implements its group.
	// It reports whether o implements the group at all.
	deliver(c Conn, o any) bool
}

// Pings is a server PING. The PONG has already been sent.
type Pings struct {
	Data string
}

// Connect fires once the connection to the server is established.
type Connect struct {
	Server string
	Port   int
}

// Disconnect fires before the socket is closed. Observers may still send.
type Disconnect struct {
	Server string
	Port   int
}

// MOTDStart is RPL_MOTDSTART (375)
type MOTDStart struct {
	Server string
	Target string
	Data   string
}

// MOTD is one RPL_MOTD (372) line
type MOTD struct {
	Server string
	Target string
	Data   string
}

// EndOfMOTD is RPL_ENDOFMOTD (376)
type EndOfMOTD struct {
	Server string
	Target string
	Data   string
}

// ServerMessage is any numeric reply without a dedicated event.
type ServerMessage struct {
	Server string
	Code   int
	Target string
	Data   string
}

type Invite struct {
	Nick    string // who sent the invitation
	Who     string // who is invited
	Channel string
}

type Kick struct {
	Channel string
	Nick    string // who kicked
	Who     string // who was kicked
	Reason  string
}

// Quit is delivered once per channel the quitting user shared with us.
// Channel is empty when no shared channel is known.
type Quit struct {
	Channel string
	Nick    string
	Reason  string
}

type NickChange struct {
	Nick string
	New  string
}

type Join struct {
	Channel string
	Nick    string
}

type Part struct {
	Channel string
	Nick    string
	Message string
}

type ModeChange struct {
	Nick   string
	Target string
	Mode   string // including the leading + or -
	Params string
}

// PrivateMessage is a PRIVMSG that is neither an ACTION nor a CTCP query.
type PrivateMessage struct {
	Nick    string
	Target  string
	Message string
}

type Topic struct {
	Nick    string
	Channel string
	Topic   string
}

type Notice struct {
	Nick    string
	Target  string
	Message string
}

// Action is a CTCP ACTION ("/me ...")
type Action struct {
	Nick   string
	Target string
	Action string
}

// CTCP queries. Params holds whatever followed the query tag.
type (
	CTCPVersion CTCPQuery
	UserInfo    CTCPQuery
	ClientInfo  CTCPQuery
	CTCPPing    CTCPQuery
	Time        CTCPQuery
	Finger      CTCPQuery
)

// CTCPQuery is the payload shared by all CTCP query events.
type CTCPQuery struct {
	Nick   string // requester
	Target string
	Params string
}

func (Pings) Kind() Kind          { return KindPings }
func (Connect) Kind() Kind        { return KindConnect }
func (Disconnect) Kind() Kind     { return KindDisconnect }
func (MOTDStart) Kind() Kind      { return KindMOTDStart }
func (MOTD) Kind() Kind           { return KindMOTD }
func (EndOfMOTD) Kind() Kind      { return KindEndOfMOTD }
func (ServerMessage) Kind() Kind  { return KindServerMessage }
func (Invite) Kind() Kind         { return KindInvite }
func (Kick) Kind() Kind           { return KindKick }
func (Quit) Kind() Kind           { return KindQuit }
func (NickChange) Kind() Kind     { return KindNickChange }
func (Join) Kind() Kind           { return KindJoin }
func (Part) Kind() Kind           { return KindPart }
func (ModeChange) Kind() Kind     { return KindModeChange }
func (PrivateMessage) Kind() Kind { return KindPrivateMessage }
func (Topic) Kind() Kind          { return KindTopic }
func (Notice) Kind() Kind         { return KindNotice }
func (Action) Kind() Kind         { return KindAction }
func (CTCPVersion) Kind() Kind    { return KindVersion }
func (UserInfo) Kind() Kind       { return KindUserInfo }
func (ClientInfo) Kind() Kind     { return KindClientInfo }
func (CTCPPing) Kind() Kind       { return KindCTCPPing }
func (Time) Kind() Kind           { return KindTime }
func (Finger) Kind() Kind         { return KindFinger }

func (e Pings) deliver(c Conn, o any) bool {
	l, ok := o.(LifecycleListener)
	if ok {
		l.OnPings(c, e.Data)
	}
	return ok
}

func (e Connect) deliver(c Conn, o any) bool {
	l, ok := o.(LifecycleListener)
	if ok {
		l.OnConnect(c, e.Server, e.Port)
	}
	return ok
}

func (e Disconnect) deliver(c Conn, o any) bool {
	l, ok := o.(LifecycleListener)
	if ok {
		l.OnDisconnect(c, e.Server, e.Port)
	}
	return ok
}

func (e MOTDStart) deliver(c Conn, o any) bool {
	l, ok := o.(ServerListener)
	if ok {
		l.OnMOTDStart(c, e.Server, e.Target, e.Data)
	}
	return ok
}

func (e MOTD) deliver(c Conn, o any) bool {
	l, ok := o.(ServerListener)
	if ok {
		l.OnMOTD(c, e.Server, e.Target, e.Data)
	}
	return ok
}

func (e EndOfMOTD) deliver(c Conn, o any) bool {
	l, ok := o.(ServerListener)
	if ok {
		l.OnEndOfMOTD(c, e.Server, e.Target, e.Data)
	}
	return ok
}

func (e ServerMessage) deliver(c Conn, o any) bool {
	l, ok := o.(ServerListener)
	if ok {
		l.OnServerMessage(c, e.Server, e.Code, e.Target, e.Data)
	}
	return ok
}

func (e Invite) deliver(c Conn, o any) bool {
	l, ok := o.(ChannelListener)
	if ok {
		l.OnInvite(c, e.Nick, e.Who, e.Channel)
	}
	return ok
}

func (e Kick) deliver(c Conn, o any) bool {
	l, ok := o.(ChannelListener)
	if ok {
		l.OnKicks(c, e.Channel, e.Nick, e.Who, e.Reason)
	}
	return ok
}

func (e Quit) deliver(c Conn, o any) bool {
	l, ok := o.(ChannelListener)
	if ok {
		l.OnQuits(c, e.Channel, e.Nick, e.Reason)
	}
	return ok
}

func (e NickChange) deliver(c Conn, o any) bool {
	l, ok := o.(ChannelListener)
	if ok {
		l.OnNickChanges(c, e.Nick, e.New)
	}
	return ok
}

func (e Join) deliver(c Conn, o any) bool {
	l, ok := o.(ChannelListener)
	if ok {
		l.OnJoins(c, e.Channel, e.Nick)
	}
	return ok
}

func (e Part) deliver(c Conn, o any) bool {
	l, ok := o.(ChannelListener)
	if ok {
		l.OnParts(c, e.Channel, e.Nick, e.Message)
	}
	return ok
}

func (e ModeChange) deliver(c Conn, o any) bool {
	l, ok := o.(ChannelListener)
	if ok {
		l.OnModeChanges(c, e.Nick, e.Target, e.Mode, e.Params)
	}
	return ok
}

func (e Topic) deliver(c Conn, o any) bool {
	l, ok := o.(ChannelListener)
	if ok {
		l.OnTopic(c, e.Nick, e.Channel, e.Topic)
	}
	return ok
}

func (e PrivateMessage) deliver(c Conn, o any) bool {
	l, ok := o.(MessageListener)
	if ok {
		l.OnPrivateMessage(c, e.Nick, e.Target, e.Message)
	}
	return ok
}

func (e Notice) deliver(c Conn, o any) bool {
	l, ok := o.(MessageListener)
	if ok {
		l.OnNotice(c, e.Nick, e.Target, e.Message)
	}
	return ok
}

func (e Action) deliver(c Conn, o any) bool {
	l, ok := o.(MessageListener)
	if ok {
		l.OnAction(c, e.Nick, e.Target, e.Action)
	}
	return ok
}

func (e CTCPVersion) deliver(c Conn, o any) bool {
	l, ok := o.(CTCPListener)
	if ok {
		l.OnVersion(c, e.Nick, e.Target, e.Params)
	}
	return ok
}

func (e UserInfo) deliver(c Conn, o any) bool {
	l, ok := o.(CTCPListener)
	if ok {
		l.OnUserInfo(c, e.Nick, e.Target, e.Params)
	}
	return ok
}

func (e ClientInfo) deliver(c Conn, o any) bool {
	l, ok := o.(CTCPListener)
	if ok {
		l.OnClientInfo(c, e.Nick, e.Target, e.Params)
	}
	return ok
}

func (e CTCPPing) deliver(c Conn, o any) bool {
	l, ok := o.(CTCPListener)
	if ok {
		l.OnPing(c, e.Nick, e.Target, e.Params)
	}
	return ok
}

func (e Time) deliver(c Conn, o any) bool {
	l, ok := o.(CTCPListener)
	if ok {
		l.OnTime(c, e.Nick, e.Target, e.Params)
	}
	return ok
}

func (e Finger) deliver(c Conn, o any) bool {
	l, ok := o.(CTCPListener)
	if ok {
		l.OnFinger(c, e.Nick, e.Target, e.Params)
	}
	return ok
}
