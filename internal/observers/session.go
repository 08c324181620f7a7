package observers

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/dalnet/ircnotify/internal/irc"
)

// ErrNicknameInUse is ERR_NICKNAMEINUSE
const ErrNicknameInUse = 433

// Identity identifies to NickServ once connected and reclaims Nick when
// the session ended up on another one.
//
// Before registration ircevent answers 433 itself by trying Nick_N, and
// the connection has no current nick yet. Identity leaves that to ircevent
// and acts only on a registered session: it moves to Alternate and
// schedules a GHOST for Nick.
type Identity struct {
	irc.NopListener

	Nick      string
	NickPass  string
	Alternate string
	// RecoverAfter is how long to wait before reclaiming Nick. Zero
	// disables recovery.
	RecoverAfter time.Duration

	mu      sync.Mutex
	pending *time.Timer
}

func (i *Identity) OnConnect(c irc.Conn, _ string, _ int) {
	if i.NickPass != "" {
		c.Privmsg("NickServ", fmt.Sprintf("IDENTIFY %s %s", i.Nick, i.NickPass))
	}
	if !strings.EqualFold(c.CurrentNick(), i.Nick) {
		i.fallback(c)
	}
}

func (i *Identity) OnServerMessage(c irc.Conn, _ string, code int, _, _ string) {
	if code != ErrNicknameInUse || c.CurrentNick() == "" {
		return
	}
	i.fallback(c)
}

func (i *Identity) OnDisconnect(irc.Conn, string, int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.pending != nil {
		i.pending.Stop()
		i.pending = nil
	}
}

// fallback moves to Alternate and schedules recovery of Nick
func (i *Identity) fallback(c irc.Conn) {
	if i.Alternate == "" || strings.EqualFold(c.CurrentNick(), i.Alternate) {
		return
	}
	log.Printf("Nick in use, switching to alternate: %s", i.Alternate)
	c.SetNick(i.Alternate)

	if i.RecoverAfter <= 0 || i.NickPass == "" {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.pending != nil {
		i.pending.Stop()
	}
	i.pending = time.AfterFunc(i.RecoverAfter, func() {
		c.Privmsg("NickServ", fmt.Sprintf("GHOST %s %s", i.Nick, i.NickPass))
		c.SetNick(i.Nick)
	})
}

// AutoJoin joins the configured channels once connected, and optionally
// follows invitations and rejoins after a kick.
type AutoJoin struct {
	irc.NopListener

	Channels     []string
	JoinOnInvite bool
	RejoinOnKick bool
}

func (a *AutoJoin) OnConnect(c irc.Conn, _ string, _ int) {
	for _, ch := range a.Channels {
		if err := c.Join(ch); err != nil {
			log.Printf("Error joining %s: %v", ch, err)
		}
	}
}

func (a *AutoJoin) OnInvite(c irc.Conn, nick, who, channel string) {
	if !a.JoinOnInvite || !strings.EqualFold(who, c.CurrentNick()) {
		return
	}
	log.Printf("Invited to %s by %s, joining", channel, nick)
	c.Join(channel)
}

func (a *AutoJoin) OnKicks(c irc.Conn, channel, nick, who, reason string) {
	if !a.RejoinOnKick || !strings.EqualFold(who, c.CurrentNick()) {
		return
	}
	log.Printf("Kicked from %s by %s (%s), rejoining", channel, nick, reason)
	c.Join(channel)
}

// Farewell says goodbye in every joined channel before disconnecting
type Farewell struct {
	irc.NopListener

	Message string
}

func (f *Farewell) OnDisconnect(c irc.Conn, _ string, _ int) {
	if f.Message == "" {
		return
	}
	for _, ch := range c.Channels() {
		if err := c.Privmsg(ch, f.Message); err != nil {
			log.Printf("Error saying goodbye in %s: %v", ch, err)
		}
	}
}
