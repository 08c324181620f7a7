package irc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allEvents has one instance of every taxonomy case, paired with the call
// the recording listener should see for it.
var allEvents = []struct {
	event Event
	call  string
}{
	{Pings{Data: "irc.example.org"}, "OnPings(irc.example.org)"},
	{Connect{Server: "irc.example.org", Port: 6667}, "OnConnect(irc.example.org,6667)"},
	{Disconnect{Server: "irc.example.org", Port: 6667}, "OnDisconnect(irc.example.org,6667)"},
	{MOTDStart{Server: "srv", Target: "me", Data: "- srv Message of the Day -"}, "OnMOTDStart(srv,me,- srv Message of the Day -)"},
	{MOTD{Server: "srv", Target: "me", Data: "- hello"}, "OnMOTD(srv,me,- hello)"},
	{EndOfMOTD{Server: "srv", Target: "me", Data: "End of /MOTD command."}, "OnEndOfMOTD(srv,me,End of /MOTD command.)"},
	{ServerMessage{Server: "srv", Code: 999, Target: "me", Data: "x"}, "OnServerMessage(srv,999,me,x)"},
	{Invite{Nick: "bob", Who: "me", Channel: "#secret"}, "OnInvite(bob,me,#secret)"},
	{Kick{Channel: "#test", Nick: "op", Who: "bob", Reason: "flood"}, "OnKicks(#test,op,bob,flood)"},
	{Quit{Channel: "#test", Nick: "bob", Reason: "bye"}, "OnQuits(#test,bob,bye)"},
	{NickChange{Nick: "bob", New: "robert"}, "OnNickChanges(bob,robert)"},
	{Join{Channel: "#test", Nick: "alice"}, "OnJoins(#test,alice)"},
	{Part{Channel: "#test", Nick: "alice", Message: "later"}, "OnParts(#test,alice,later)"},
	{ModeChange{Nick: "op", Target: "#test", Mode: "+o", Params: "alice"}, "OnModeChanges(op,#test,+o,alice)"},
	{PrivateMessage{Nick: "bob", Target: "#test", Message: "hi"}, "OnPrivateMessage(bob,#test,hi)"},
	{Topic{Nick: "op", Channel: "#test", Topic: "welcome"}, "OnTopic(op,#test,welcome)"},
	{Notice{Nick: "srv", Target: "me", Message: "*** Looking up your hostname"}, "OnNotice(srv,me,*** Looking up your hostname)"},
	{Action{Nick: "bob", Target: "#test", Action: "waves"}, "OnAction(bob,#test,waves)"},
	{CTCPVersion{Nick: "bob", Target: "me"}, "OnVersion(bob,me,)"},
	{UserInfo{Nick: "bob", Target: "me"}, "OnUserInfo(bob,me,)"},
	{ClientInfo{Nick: "bob", Target: "me"}, "OnClientInfo(bob,me,)"},
	{CTCPPing{Nick: "bob", Target: "me", Params: "12345"}, "OnPing(bob,me,12345)"},
	{Time{Nick: "bob", Target: "me"}, "OnTime(bob,me,)"},
	{Finger{Nick: "bob", Target: "me"}, "OnFinger(bob,me,)"},
}

func TestNotifyInvokesMatchingHandlerOnce(t *testing.T) {
	for _, tc := range allEvents {
		t.Run(tc.event.Kind().String(), func(t *testing.T) {
			var d Dispatcher
			a, b := &recording{name: "a"}, &recording{name: "b"}
			require.NoError(t, d.Add(a))
			require.NoError(t, d.Add(b))

			d.Notify(&fakeConn{}, tc.event)

			assert.Equal(t, []string{tc.call}, a.calls)
			assert.Equal(t, []string{tc.call}, b.calls)
		})
	}
}

func TestNotifyJoinScenario(t *testing.T) {
	var d Dispatcher
	a := &recording{name: "a"}
	require.NoError(t, d.Add(a))

	d.Notify(&fakeConn{}, Join{Channel: "#test", Nick: "alice"})

	assert.Equal(t, []string{"OnJoins(#test,alice)"}, a.calls)
}

func TestNotifyRegistrationOrder(t *testing.T) {
	var d Dispatcher
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, d.Add(&recording{name: name, log: &order}))
	}

	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})
	d.Notify(nil, Part{Channel: "#test", Nick: "alice"})

	assert.Equal(t, []string{
		"a:OnJoins(#test,alice)",
		"b:OnJoins(#test,alice)",
		"c:OnJoins(#test,alice)",
		"a:OnParts(#test,alice,)",
		"b:OnParts(#test,alice,)",
		"c:OnParts(#test,alice,)",
	}, order)
}

func TestNotifyIsolatesPanickingHandler(t *testing.T) {
	var d Dispatcher
	var reported []*HandlerError
	d.ErrorHandler = func(err *HandlerError) { reported = append(reported, err) }

	a := &recording{name: "a", fail: map[string]bool{"OnPrivateMessage": true}}
	b := &recording{name: "b"}
	require.NoError(t, d.Add(a))
	require.NoError(t, d.Add(b))

	d.Notify(&fakeConn{}, PrivateMessage{Nick: "bob", Target: "#test", Message: "hi"})

	assert.Equal(t, []string{"OnPrivateMessage(bob,#test,hi)"}, b.calls)
	require.Len(t, reported, 1)
	assert.Equal(t, KindPrivateMessage, reported[0].Kind)
	assert.Equal(t, "*irc.recording", reported[0].Observer)
	assert.Contains(t, reported[0].Error(), "a failed in OnPrivateMessage")
	assert.NotEmpty(t, reported[0].Stack)

	// the next event still reaches everyone, including the one that failed
	d.Notify(&fakeConn{}, Join{Channel: "#test", Nick: "bob"})
	assert.Equal(t, "OnJoins(#test,bob)", a.calls[len(a.calls)-1])
	assert.Equal(t, "OnJoins(#test,bob)", b.calls[len(b.calls)-1])
}

type errPanicker struct{ NopListener }

var errBoom = errors.New("boom")

func (*errPanicker) OnJoins(Conn, string, string) { panic(errBoom) }

func TestHandlerErrorUnwrap(t *testing.T) {
	var d Dispatcher
	var got error
	d.ErrorHandler = func(err *HandlerError) { got = err }
	require.NoError(t, d.Add(&errPanicker{}))

	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})

	assert.ErrorIs(t, got, errBoom)
}

func TestRemoveBeforeNotify(t *testing.T) {
	var d Dispatcher
	a, b := &recording{name: "a"}, &recording{name: "b"}
	require.NoError(t, d.Add(a))
	require.NoError(t, d.Add(b))

	d.Remove(a)
	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})

	assert.Empty(t, a.calls)
	assert.Len(t, b.calls, 1)
	assert.Equal(t, 1, d.Len())
}

func TestRemoveUnregisteredIsNoop(t *testing.T) {
	var d Dispatcher
	a := &recording{name: "a"}

	d.Remove(a)
	d.Remove(nil)
	require.NoError(t, d.Add(a))
	d.Remove(&recording{name: "other"})

	assert.Equal(t, 1, d.Len())
}

func TestAddTwiceDeliversTwice(t *testing.T) {
	var d Dispatcher
	a := &recording{name: "a"}
	require.NoError(t, d.Add(a))
	require.NoError(t, d.Add(a))

	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})
	assert.Len(t, a.calls, 2)

	// removal drops one registration at a time
	d.Remove(a)
	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})
	assert.Len(t, a.calls, 3)

	d.Remove(a)
	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})
	assert.Len(t, a.calls, 3)
	assert.Equal(t, 0, d.Len())
}

func TestAddRejectsNonListeners(t *testing.T) {
	var d Dispatcher
	assert.ErrorIs(t, d.Add(nil), ErrNotListener)
	assert.ErrorIs(t, d.Add("not a listener"), ErrNotListener)
	assert.Equal(t, 0, d.Len())
}

// funcListener is a listener type that cannot be used as a map key
type funcListener func(channel, nick string)

func (f funcListener) OnInvite(Conn, string, string, string)              {}
func (f funcListener) OnKicks(Conn, string, string, string, string)       {}
func (f funcListener) OnQuits(Conn, string, string, string)               {}
func (f funcListener) OnNickChanges(Conn, string, string)                 {}
func (f funcListener) OnJoins(_ Conn, channel, nick string)               { f(channel, nick) }
func (f funcListener) OnParts(Conn, string, string, string)               {}
func (f funcListener) OnModeChanges(Conn, string, string, string, string) {}
func (f funcListener) OnTopic(Conn, string, string, string)               {}

func TestAddRejectsNonComparable(t *testing.T) {
	var d Dispatcher
	err := d.Add(funcListener(func(string, string) {}))
	assert.ErrorIs(t, err, ErrNotComparable)
}

// boxed is a comparable type whose interface field may hold a slice
type boxed struct{ tag any }

func (boxed) OnPrivateMessage(Conn, string, string, string) {}
func (boxed) OnNotice(Conn, string, string, string)         {}
func (boxed) OnAction(Conn, string, string, string)         {}

func TestAddRejectsUnhashableDynamicValue(t *testing.T) {
	var d Dispatcher
	b := boxed{tag: []string{"x"}}

	assert.ErrorIs(t, d.Add(b), ErrNotComparable)
	assert.NotPanics(t, func() { d.Remove(b) })
	assert.Equal(t, 0, d.Len())

	require.NoError(t, d.Add(boxed{tag: "x"}))
	d.Remove(boxed{tag: "x"})
	assert.Equal(t, 0, d.Len())
}

func TestPanickingErrorHandlerDoesNotStopDelivery(t *testing.T) {
	d := Dispatcher{ErrorHandler: func(*HandlerError) { panic("sink broken") }}
	first := &recording{name: "first", fail: map[string]bool{"OnJoins": true}}
	second := &recording{name: "second"}
	require.NoError(t, d.Add(first))
	require.NoError(t, d.Add(second))

	assert.NotPanics(t, func() { d.Notify(nil, Join{Channel: "#test", Nick: "alice"}) })
	assert.Equal(t, []string{"OnJoins(#test,alice)"}, second.calls)
}

// partial implements only the message group
type partial struct{ messages []string }

func (p *partial) OnPrivateMessage(_ Conn, nick, target, message string) {
	p.messages = append(p.messages, nick+" "+target+" "+message)
}
func (p *partial) OnNotice(Conn, string, string, string) {}
func (p *partial) OnAction(Conn, string, string, string) {}

func TestPartialListenerSkipsOtherGroups(t *testing.T) {
	var d Dispatcher
	p := &partial{}
	require.NoError(t, d.Add(p))

	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})
	d.Notify(nil, PrivateMessage{Nick: "bob", Target: "#test", Message: "hi"})
	d.Notify(nil, CTCPVersion{Nick: "bob", Target: "me"})

	assert.Equal(t, []string{"bob #test hi"}, p.messages)
}

// remover unregisters itself and another observer while handling a join
type remover struct {
	NopListener
	d      *Dispatcher
	target any
	joins  int
}

func (r *remover) OnJoins(Conn, string, string) {
	r.joins++
	r.d.Remove(r)
	r.d.Remove(r.target)
}

func TestRemoveDuringNotify(t *testing.T) {
	var d Dispatcher
	b := &recording{name: "b"}
	r := &remover{d: &d, target: b}
	require.NoError(t, d.Add(r))
	require.NoError(t, d.Add(b))

	// b was removed mid fan-out; it still gets the in-flight event
	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})
	assert.Equal(t, 1, r.joins)
	assert.Equal(t, []string{"OnJoins(#test,alice)"}, b.calls)

	d.Notify(nil, Join{Channel: "#test", Nick: "bob"})
	assert.Equal(t, 1, r.joins)
	assert.Len(t, b.calls, 1)
	assert.Equal(t, 0, d.Len())
}

// adder registers another observer while handling a join
type adder struct {
	NopListener
	d     *Dispatcher
	extra any
}

func (a *adder) OnJoins(Conn, string, string) {
	if a.extra != nil {
		a.d.Add(a.extra)
		a.extra = nil
	}
}

func TestAddDuringNotifyTakesEffectNextEvent(t *testing.T) {
	var d Dispatcher
	late := &recording{name: "late"}
	require.NoError(t, d.Add(&adder{d: &d, extra: late}))

	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})
	assert.Empty(t, late.calls)

	d.Notify(nil, Join{Channel: "#test", Nick: "bob"})
	assert.Equal(t, []string{"OnJoins(#test,bob)"}, late.calls)
}

// farewell sends a goodbye from inside OnDisconnect
type farewell struct {
	NopListener
	err error
}

func (f *farewell) OnDisconnect(c Conn, server string, port int) {
	f.err = c.Privmsg("#test", "goodbye from "+server)
}

func TestDisconnectHandlerCanStillSend(t *testing.T) {
	var d Dispatcher
	conn := &fakeConn{}
	f := &farewell{}
	require.NoError(t, d.Add(f))

	d.Notify(conn, Disconnect{Server: "irc.example.org", Port: 6667})
	conn.closed = true

	require.NoError(t, f.err)
	assert.Equal(t, []string{"PRIVMSG #test goodbye from irc.example.org"}, conn.sent)
}

// reentrant notifies a nested event from inside a handler
type reentrant struct {
	NopListener
	d   *Dispatcher
	log *[]string
}

func (r *reentrant) OnJoins(c Conn, channel, nick string) {
	*r.log = append(*r.log, "reentrant:join")
	r.d.Notify(c, Topic{Nick: nick, Channel: channel, Topic: "nested"})
}

func TestReentrantNotifyIsDeliveredDepthFirst(t *testing.T) {
	var d Dispatcher
	var order []string
	require.NoError(t, d.Add(&reentrant{d: &d, log: &order}))
	require.NoError(t, d.Add(&recording{name: "b", log: &order}))

	d.Notify(nil, Join{Channel: "#test", Nick: "alice"})

	assert.Equal(t, []string{
		"reentrant:join",
		"b:OnTopic(alice,#test,nested)",
		"b:OnJoins(#test,alice)",
	}, order)
}

func TestNotifyNilEvent(t *testing.T) {
	var d Dispatcher
	a := &recording{name: "a"}
	require.NoError(t, d.Add(a))

	d.Notify(nil, nil)
	assert.Empty(t, a.calls)
}

func TestDispatchersAreIndependent(t *testing.T) {
	var d1, d2 Dispatcher
	a := &recording{name: "a"}
	require.NoError(t, d1.Add(a))

	d2.Notify(nil, Join{Channel: "#test", Nick: "alice"})
	assert.Empty(t, a.calls)
}
