// Package irc connects to an IRC server and delivers what happens on the
// connection to registered observers.
//
// The client code is split across:
//   - client.go: connection lifecycle, outbound commands, channel tracking
//   - decode.go: classifying inbound messages into events
//   - events.go: the event types
//   - listener.go: the observer interfaces and NopListener
//   - dispatcher.go: ordered fan-out with panic isolation
package irc

/*
Event Summary:

Connection:
- Connect: once registration completes (376 or 422), after every reconnect
- Disconnect: from Client.Quit, before QUIT is sent
- PING (Pings): server keep-alive, ircevent sends the PONG

Server replies:
- 375 (MOTDStart), 372 (MOTD), 376 (EndOfMOTD)
- Any other numeric (ServerMessage), carrying the code

Channels:
- INVITE (Invite), KICK (Kick), JOIN (Join), PART (Part), MODE (ModeChange),
  TOPIC (Topic), NICK (NickChange)
- QUIT (Quit): once per channel shared with the quitting user, or once with
  an empty channel when none is known

Messages:
- PRIVMSG (PrivateMessage), NOTICE (Notice)
- CTCP ACTION in a PRIVMSG (Action)

CTCP queries:
- VERSION, USERINFO, CLIENTINFO, PING (CTCPPing), TIME, FINGER
- Other CTCP tags produce no event
- ircevent's EnableCTCP stays off: queries arrive as PRIVMSG and replies are
  left to observers
*/
