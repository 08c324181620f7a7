package roster

import (
	"sort"
	"strings"
)

// Roster tracks which nicks are in which channels, as seen from our
// connection. Channel and nick names are compared case-insensitively.
//
// Roster is not safe for concurrent use; the client only touches it from the
// read loop.
type Roster struct {
	channels map[string]*channel
}

type channel struct {
	name    string
	members map[string]string // folded nick -> nick as last seen
}

// New creates an empty roster
func New() *Roster {
	return &Roster{channels: make(map[string]*channel)}
}

func fold(s string) string {
	return strings.ToLower(s)
}

// Join records nick in channel
func (r *Roster) Join(name, nick string) {
	ch, ok := r.channels[fold(name)]
	if !ok {
		ch = &channel{name: name, members: make(map[string]string)}
		r.channels[fold(name)] = ch
	}
	ch.members[fold(nick)] = nick
}

// Names records a RPL_NAMREPLY list. Membership prefixes (@, +, ...) are
// stripped.
func (r *Roster) Names(name string, nicks []string) {
	for _, n := range nicks {
		n = strings.TrimLeft(n, "~&@%+")
		if n != "" {
			r.Join(name, n)
		}
	}
}

// Part removes nick from channel. When me is the nick leaving, the whole
// channel is forgotten.
func (r *Roster) Part(name, nick, me string) {
	if strings.EqualFold(nick, me) {
		delete(r.channels, fold(name))
		return
	}
	if ch, ok := r.channels[fold(name)]; ok {
		delete(ch.members, fold(nick))
	}
}

// Quit removes nick from every channel and returns the channels it was in,
// sorted.
func (r *Roster) Quit(nick string) []string {
	shared := r.ChannelsOf(nick)
	for _, ch := range r.channels {
		delete(ch.members, fold(nick))
	}
	return shared
}

// Rename moves nick to newNick in every channel
func (r *Roster) Rename(nick, newNick string) {
	for _, ch := range r.channels {
		if _, ok := ch.members[fold(nick)]; ok {
			delete(ch.members, fold(nick))
			ch.members[fold(newNick)] = newNick
		}
	}
}

// ChannelsOf returns the channels nick is known to be in, sorted
func (r *Roster) ChannelsOf(nick string) []string {
	var out []string
	for _, ch := range r.channels {
		if _, ok := ch.members[fold(nick)]; ok {
			out = append(out, ch.name)
		}
	}
	sort.Strings(out)
	return out
}

// Channels returns every tracked channel, sorted
func (r *Roster) Channels() []string {
	out := make([]string, 0, len(r.channels))
	for _, ch := range r.channels {
		out = append(out, ch.name)
	}
	sort.Strings(out)
	return out
}

// Members returns the nicks in channel, sorted
func (r *Roster) Members(name string) []string {
	ch, ok := r.channels[fold(name)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(ch.members))
	for _, n := range ch.members {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Reset forgets everything
func (r *Roster) Reset() {
	r.channels = make(map[string]*channel)
}
