package irc

import (
	"crypto/tls"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/dalnet/ircnotify/internal/config"
	"github.com/dalnet/ircnotify/internal/roster"
	"github.com/ergochat/irc-go/ircevent"
	"github.com/ergochat/irc-go/ircmsg"
)

// Version information (set at build time or here)
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// transport is the part of ircevent.Connection the client drives
type transport interface {
	Connect() error
	Loop()
	Quit(message string)
	Send(command string, params ...string) error
	SetNick(nick string)
	CurrentNick() string
}

type eventTransport struct {
	conn *ircevent.Connection
}

func (t eventTransport) Connect() error      { return t.conn.Connect() }
func (t eventTransport) Loop()               { t.conn.Loop() }
func (t eventTransport) SetNick(nick string) { t.conn.SetNick(nick) }
func (t eventTransport) CurrentNick() string { return t.conn.CurrentNick() }

func (t eventTransport) Send(command string, params ...string) error {
	return t.conn.Send(command, params...)
}

func (t eventTransport) Quit(message string) {
	if message != "" {
		t.conn.QuitMessage = message
	}
	t.conn.Quit()
}

// Client owns one IRC connection and the observers registered on it. It
// implements Conn and is the handle observers receive.
type Client struct {
	conn transport
	cfg  *config.Config

	mu     sync.Mutex
	roster *roster.Roster
	closed bool

	listeners Dispatcher
}

var _ Conn = (*Client)(nil)

// NewClient creates a client for cfg. It does not connect.
func NewClient(cfg *config.Config) *Client {
	conn := &ircevent.Connection{
		Server:      fmt.Sprintf("%s:%d", cfg.Server, cfg.Port),
		Nick:        cfg.Nick,
		User:        cfg.Username,
		RealName:    cfg.IRCName,
		Password:    cfg.ServerPass,
		QuitMessage: "Shutting down",
		UseTLS:      cfg.TLS,
		TLSConfig:   &tls.Config{ServerName: cfg.Server},
	}

	c := newClient(cfg, eventTransport{conn: conn})
	c.registerHandlers(conn)

	return c
}

// inbound lists the commands Decode turns into events. Numerics are
// registered separately.
var inbound = []string{
	"PING", "INVITE", "KICK", "QUIT", "NICK", "JOIN", "PART",
	"MODE", "TOPIC", "NOTICE", "PRIVMSG",
}

func (c *Client) registerHandlers(conn *ircevent.Connection) {
	for _, cmd := range inbound {
		conn.AddCallback(cmd, c.handle)
	}
	for code := 1; code <= 999; code++ {
		conn.AddCallback(fmt.Sprintf("%03d", code), c.handle)
	}

	// Registered after the numerics so 376/422 reach observers before
	// Connect. ircevent runs these on every (re)registration.
	conn.AddConnectCallback(c.onConnect)
	conn.AddDisconnectCallback(c.onDisconnected)
}

func newClient(cfg *config.Config, t transport) *Client {
	return &Client{
		conn:   t,
		cfg:    cfg,
		roster: roster.New(),
	}
}

// AddListener registers an observer. See Dispatcher.Add.
func (c *Client) AddListener(o any) error {
	return c.listeners.Add(o)
}

// RemoveListener unregisters an observer. See Dispatcher.Remove.
func (c *Client) RemoveListener(o any) {
	c.listeners.Remove(o)
}

// SetErrorHandler replaces the sink for panicking handlers
func (c *Client) SetErrorHandler(fn func(*HandlerError)) {
	c.listeners.ErrorHandler = fn
}

// Connect dials and registers with the server. Observers see Connect once
// registration completes, here and after every reconnect made by Loop.
func (c *Client) Connect() error {
	c.mu.Lock()
	c.closed = false
	c.mu.Unlock()

	if err := c.conn.Connect(); err != nil {
		return fmt.Errorf("connect to %s:%d: %w", c.cfg.Server, c.cfg.Port, err)
	}
	return nil
}

func (c *Client) onConnect(ircmsg.Message) {
	log.Printf("Connected to %s:%d as %s", c.cfg.Server, c.cfg.Port, c.conn.CurrentNick())
	c.listeners.Notify(c, Connect{Server: c.cfg.Server, Port: c.cfg.Port})
}

// onDisconnected runs whenever a registered connection goes away, before
// ircevent attempts to reconnect. Membership from the old session is void.
func (c *Client) onDisconnected(ircmsg.Message) {
	c.mu.Lock()
	c.roster.Reset()
	c.mu.Unlock()
}

// Loop runs the IRC event loop (blocking). ircevent reconnects by itself
// until Quit is called.
func (c *Client) Loop() {
	c.conn.Loop()

	c.mu.Lock()
	c.roster.Reset()
	c.mu.Unlock()
}

// Quit notifies Disconnect while the connection is still usable, then
// disconnects. Observers can say goodbye but cannot prevent the quit.
// Calling Quit more than once has no further effect.
func (c *Client) Quit(message string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.listeners.Notify(c, Disconnect{Server: c.cfg.Server, Port: c.cfg.Port})

	c.conn.Quit(message)
}

// handle is the ircevent callback for every inbound message
func (c *Client) handle(m ircmsg.Message) {
	if code, ok := numeric(m.Command); ok && code == RplNamReply && len(m.Params) >= 4 {
		c.mu.Lock()
		c.roster.Names(m.Params[2], strings.Fields(m.Params[3]))
		c.mu.Unlock()
	}

	e, ok := Decode(m)
	if !ok {
		return
	}

	me := c.conn.CurrentNick()
	c.mu.Lock()
	switch e := e.(type) {
	case Join:
		c.roster.Join(e.Channel, e.Nick)
	case Part:
		c.roster.Part(e.Channel, e.Nick, me)
	case Kick:
		c.roster.Part(e.Channel, e.Who, me)
	case NickChange:
		c.roster.Rename(e.Nick, e.New)
	case Quit:
		shared := c.roster.Quit(e.Nick)
		c.mu.Unlock()
		if len(shared) == 0 {
			c.listeners.Notify(c, e)
			return
		}
		for _, ch := range shared {
			e.Channel = ch
			c.listeners.Notify(c, e)
		}
		return
	}
	c.mu.Unlock()

	c.listeners.Notify(c, e)
}

// CurrentNick returns the nick the server knows us by
func (c *Client) CurrentNick() string {
	return c.conn.CurrentNick()
}

// Server returns the configured server host and port
func (c *Client) Server() (string, int) {
	return c.cfg.Server, c.cfg.Port
}

// Channels returns the channels we are currently in
func (c *Client) Channels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.ChannelsOf(c.conn.CurrentNick())
}

// Members returns the nicks known to be in channel
func (c *Client) Members(channel string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Members(channel)
}

func (c *Client) Send(command string, params ...string) error {
	return c.conn.Send(command, params...)
}

func (c *Client) Privmsg(target, message string) error {
	return c.conn.Send("PRIVMSG", target, message)
}

func (c *Client) Notice(target, message string) error {
	return c.conn.Send("NOTICE", target, message)
}

// Action sends a CTCP ACTION ("/me")
func (c *Client) Action(target, action string) error {
	return c.conn.Send("PRIVMSG", target, ctcpDelim+"ACTION "+action+ctcpDelim)
}

// CTCPReply answers a CTCP query with a NOTICE
func (c *Client) CTCPReply(target, tag, reply string) error {
	body := strings.ToUpper(tag)
	if reply != "" {
		body += " " + reply
	}
	return c.conn.Send("NOTICE", target, ctcpDelim+body+ctcpDelim)
}

func (c *Client) Join(channel string) error {
	return c.conn.Send("JOIN", channel)
}

func (c *Client) Part(channel, message string) error {
	if message == "" {
		return c.conn.Send("PART", channel)
	}
	return c.conn.Send("PART", channel, message)
}

func (c *Client) SetNick(nick string) {
	c.conn.SetNick(nick)
}
