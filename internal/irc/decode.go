package irc

import (
	"strconv"
	"strings"

	"github.com/ergochat/irc-go/ircmsg"
)

const ctcpDelim = "\x01"

// Numerics with dedicated events
const (
	RplMOTDStart = 375
	RplMOTD      = 372
	RplEndOfMOTD = 376
	RplNamReply  = 353
)

// Decode classifies a message into a taxonomy case. It returns false for
// messages that produce no event (unknown commands, unknown CTCP tags,
// malformed messages).
//
// QUIT decodes with an empty channel; the client expands it per channel.
func Decode(m ircmsg.Message) (Event, bool) {
	if code, ok := numeric(m.Command); ok {
		return decodeNumeric(m, code)
	}

	nick := m.Nick()
	switch cmd := strings.ToUpper(m.Command); cmd {
	case "PING":
		return Pings{Data: param(m, 0)}, true
	case "INVITE":
		if len(m.Params) < 2 {
			return nil, false
		}
		return Invite{Nick: nick, Who: m.Params[0], Channel: m.Params[1]}, true
	case "KICK":
		if len(m.Params) < 2 {
			return nil, false
		}
		return Kick{Channel: m.Params[0], Nick: nick, Who: m.Params[1], Reason: param(m, 2)}, true
	case "QUIT":
		return Quit{Nick: nick, Reason: param(m, 0)}, true
	case "NICK":
		if len(m.Params) < 1 {
			return nil, false
		}
		return NickChange{Nick: nick, New: m.Params[0]}, true
	case "JOIN":
		if len(m.Params) < 1 {
			return nil, false
		}
		return Join{Channel: m.Params[0], Nick: nick}, true
	case "PART":
		if len(m.Params) < 1 {
			return nil, false
		}
		return Part{Channel: m.Params[0], Nick: nick, Message: param(m, 1)}, true
	case "MODE":
		if len(m.Params) < 2 {
			return nil, false
		}
		return ModeChange{
			Nick:   nick,
			Target: m.Params[0],
			Mode:   m.Params[1],
			Params: strings.Join(m.Params[2:], " "),
		}, true
	case "TOPIC":
		if len(m.Params) < 1 {
			return nil, false
		}
		return Topic{Nick: nick, Channel: m.Params[0], Topic: param(m, 1)}, true
	case "NOTICE":
		if len(m.Params) < 2 {
			return nil, false
		}
		return Notice{Nick: nick, Target: m.Params[0], Message: m.Params[1]}, true
	case "PRIVMSG":
		if len(m.Params) < 2 {
			return nil, false
		}
		text := m.Params[1]
		if strings.HasPrefix(text, ctcpDelim) {
			tag, rest := splitCTCP(text)
			return decodeCTCP(tag, nick, m.Params[0], rest)
		}
		return PrivateMessage{Nick: nick, Target: m.Params[0], Message: text}, true
	default:
		// ircevent rewrites CTCP queries to CTCP_<TAG> before running
		// callbacks
		if tag, ok := strings.CutPrefix(cmd, "CTCP_"); ok && len(m.Params) > 0 {
			target := m.Params[0]
			var rest string
			if len(m.Params) > 1 {
				rest = strings.Trim(m.Params[len(m.Params)-1], ctcpDelim)
				if t, r := splitTag(rest); strings.EqualFold(t, tag) {
					rest = r
				}
			}
			return decodeCTCP(tag, nick, target, rest)
		}
	}
	return nil, false
}

func decodeNumeric(m ircmsg.Message, code int) (Event, bool) {
	target := param(m, 0)
	data := param(m, len(m.Params)-1)
	if len(m.Params) < 2 {
		data = ""
	}

	switch code {
	case RplMOTDStart:
		return MOTDStart{Server: m.Source, Target: target, Data: data}, true
	case RplMOTD:
		return MOTD{Server: m.Source, Target: target, Data: data}, true
	case RplEndOfMOTD:
		return EndOfMOTD{Server: m.Source, Target: target, Data: data}, true
	}

	var rest string
	if len(m.Params) > 1 {
		rest = strings.Join(m.Params[1:], " ")
	}
	return ServerMessage{Server: m.Source, Code: code, Target: target, Data: rest}, true
}

func decodeCTCP(tag, nick, target, params string) (Event, bool) {
	q := CTCPQuery{Nick: nick, Target: target, Params: params}
	switch strings.ToUpper(tag) {
	case "ACTION":
		return Action{Nick: nick, Target: target, Action: params}, true
	case "VERSION":
		return CTCPVersion(q), true
	case "USERINFO":
		return UserInfo(q), true
	case "CLIENTINFO":
		return ClientInfo(q), true
	case "PING":
		return CTCPPing(q), true
	case "TIME":
		return Time(q), true
	case "FINGER":
		return Finger(q), true
	}
	return nil, false
}

// splitCTCP unwraps "\x01TAG params\x01". A missing closing delimiter is
// tolerated.
func splitCTCP(text string) (tag, params string) {
	text = strings.TrimPrefix(text, ctcpDelim)
	text = strings.TrimSuffix(text, ctcpDelim)
	return splitTag(text)
}

func splitTag(text string) (tag, params string) {
	tag, params, _ = strings.Cut(text, " ")
	return tag, params
}

// numeric reports whether cmd is a three digit reply code.
func numeric(cmd string) (int, bool) {
	if len(cmd) != 3 {
		return 0, false
	}
	for i := 0; i < len(cmd); i++ {
		if cmd[i] < '0' || cmd[i] > '9' {
			return 0, false
		}
	}
	code, err := strconv.Atoi(cmd)
	return code, err == nil
}

func param(m ircmsg.Message, i int) string {
	if i < 0 || i >= len(m.Params) {
		return ""
	}
	return m.Params[i]
}
