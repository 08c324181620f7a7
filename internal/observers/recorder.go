package observers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dalnet/ircnotify/internal/irc"
	"github.com/dalnet/ircnotify/internal/storage"
)

// Recorder keeps a transcript of channel activity and the last server MOTD
// in the data directory.
type Recorder struct {
	irc.NopListener

	dataDir string
	now     func() time.Time

	mu         sync.Mutex
	transcript []string
	motd       *storage.MOTD // being collected between 375 and 376
}

// NewRecorder loads any existing transcript from dataDir
func NewRecorder(dataDir string) (*Recorder, error) {
	entries, err := storage.LoadTranscript(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	return &Recorder{
		dataDir:    dataDir,
		now:        time.Now,
		transcript: entries,
	}, nil
}

// Transcript returns a copy of the recorded entries, oldest first
func (r *Recorder) Transcript() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.transcript...)
}

func (r *Recorder) record(format string, args ...any) {
	timestamp := r.now().UTC().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] ", timestamp) + fmt.Sprintf(format, args...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transcript = storage.AddEntry(r.transcript, entry)
	if err := storage.SaveTranscript(r.dataDir, r.transcript); err != nil {
		log.Printf("Error saving transcript: %v", err)
	}
}

func (r *Recorder) OnMOTDStart(_ irc.Conn, server, _, _ string) {
	r.mu.Lock()
	r.motd = &storage.MOTD{Server: server}
	r.mu.Unlock()
}

func (r *Recorder) OnMOTD(_ irc.Conn, server, _, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.motd == nil {
		r.motd = &storage.MOTD{Server: server}
	}
	r.motd.Lines = append(r.motd.Lines, data)
}

func (r *Recorder) OnEndOfMOTD(irc.Conn, string, string, string) {
	r.mu.Lock()
	motd := r.motd
	r.motd = nil
	r.mu.Unlock()

	if motd == nil {
		return
	}
	if err := storage.SaveMOTD(r.dataDir, motd); err != nil {
		log.Printf("Error saving MOTD: %v", err)
	}
}

func (r *Recorder) OnKicks(_ irc.Conn, channel, nick, who, reason string) {
	r.record("%s %s kicked %s (%s)", channel, nick, who, reason)
}

func (r *Recorder) OnQuits(_ irc.Conn, channel, nick, reason string) {
	r.record("%s %s quit (%s)", channel, nick, reason)
}

func (r *Recorder) OnNickChanges(_ irc.Conn, nick, newNick string) {
	r.record("%s is now known as %s", nick, newNick)
}

func (r *Recorder) OnJoins(_ irc.Conn, channel, nick string) {
	r.record("%s %s joined", channel, nick)
}

func (r *Recorder) OnParts(_ irc.Conn, channel, nick, message string) {
	r.record("%s %s left (%s)", channel, nick, message)
}

func (r *Recorder) OnTopic(_ irc.Conn, nick, channel, topic string) {
	r.record("%s %s set topic: %s", channel, nick, topic)
}

func (r *Recorder) OnPrivateMessage(_ irc.Conn, nick, target, message string) {
	r.record("%s <%s> %s", target, nick, message)
}

func (r *Recorder) OnAction(_ irc.Conn, nick, target, action string) {
	r.record("%s * %s %s", target, nick, action)
}
