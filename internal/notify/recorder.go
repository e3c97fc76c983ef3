package notify

import (
	"sync"

	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

// Kind names a notification type as seen by Recorder and the websocket
// protocol.
type Kind string

const (
	KindRecordingStatus   Kind = "recording_status"
	KindLiveEvent         Kind = "live_event"
	KindPlaybackFinished  Kind = "playback_finished"
	KindFileSaveRequested Kind = "file_save_requested"
	KindFileLoadRequested Kind = "file_load_requested"
)

// Message is one notification in transport form.
type Message struct {
	Type      Kind            `json:"type"`
	Recording *bool           `json:"recording,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	Event     *event.Recorded `json:"event,omitempty"`
}

// RecordingStatusMessage builds the transport form of RecordingStatus.
func RecordingStatusMessage(recording bool, sessionID string) Message {
	return Message{Type: KindRecordingStatus, Recording: &recording, SessionID: sessionID}
}

// LiveEventMessage builds the transport form of LiveEvent.
func LiveEventMessage(rec event.Recorded) Message {
	return Message{Type: KindLiveEvent, Event: &rec}
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) add(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

func (r *Recorder) RecordingStatus(recording bool, sessionID string) {
	r.add(RecordingStatusMessage(recording, sessionID))
}

func (r *Recorder) LiveEvent(rec event.Recorded) { r.add(LiveEventMessage(rec)) }
func (r *Recorder) PlaybackFinished()            { r.add(Message{Type: KindPlaybackFinished}) }
func (r *Recorder) FileSaveRequested()           { r.add(Message{Type: KindFileSaveRequested}) }
func (r *Recorder) FileLoadRequested()           { r.add(Message{Type: KindFileLoadRequested}) }

// Messages returns a copy of everything received so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Count returns how many notifications of kind k were received.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.messages {
		if m.Type == k {
			n++
		}
	}
	return n
}
