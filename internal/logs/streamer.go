// internal/logs/streamer.go
package logs

import (
	"bufio"
	"context"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	streamReadBufferBytes = 64 * 1024
	// Bytes of one line beyond this are dropped and the line is marked.
	streamLineMaxBytes = 1024 * 1024

	// TruncatedMarker ends a line that exceeded the line limit.
	TruncatedMarker = " [truncated]"

	// StreamErrorMessage is the payload of the terminal error event.
	StreamErrorMessage = "Unable to stream logs"
)

// Event is one server-push frame. An empty Name is a plain data frame.
type Event struct {
	Name string
	Data string
}

// IsError reports whether this is the terminal error event.
func (e Event) IsError() bool {
	return e.Name == "error"
}

// Encode renders the event in text/event-stream framing.
func (e Event) Encode() string {
	var b strings.Builder
	if e.Name != "" {
		b.WriteString("event: ")
		b.WriteString(e.Name)
		b.WriteByte('\n')
	}
	// Event-stream parsers end a field at CRLF, CR or LF; every one of them
	// must start a new data field or the payload could inject fields.
	for _, part := range strings.Split(lineBreaks.Replace(e.Data), "\n") {
		b.WriteString("data: ")
		b.WriteString(part)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// KeepaliveFrame is an event-stream comment; clients ignore it.
const KeepaliveFrame = ": keepalive\n\n"

// Streamer republishes a following container log read as push events.
type Streamer struct {
	runtime Runtime
}

// NewStreamer creates a live log streamer.
func NewStreamer(runtime Runtime) *Streamer {
	return &Streamer{runtime: runtime}
}

// Stream returns a lazy, single-use sequence of events for h, seeded with tail
// backlog lines. Each source line yields exactly one data event, in order. A
// read failure while ctx is live yields one error event and ends the sequence;
// EOF and cancellation end it silently. The runtime reader is closed on every
// exit path, including when the consumer stops early.
func (s *Streamer) Stream(ctx context.Context, h Handle, tail int) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		rc, err := s.runtime.Logs(ctx, h.ID, LogOptions{Tail: tail, Follow: true, Timestamps: true})
		if err != nil {
			if ctx.Err() == nil {
				log.Error("Unable to open log stream", "service", h.Service, "container", h.Name, "error", err)
				yield(Event{Name: "error", Data: StreamErrorMessage})
			}
			return
		}
		defer func() { _ = rc.Close() }()

		reader := bufio.NewReaderSize(rc, streamReadBufferBytes)
		for {
			line, truncated, err := readLine(reader, streamLineMaxBytes)
			if err == nil || (errors.Is(err, io.EOF) && len(line) > 0) {
				data := Sanitize(decode(line))
				if truncated {
					data += TruncatedMarker
				}
				if !yield(Event{Data: data}) {
					return
				}
			}
			if err == nil {
				continue
			}
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				log.Error("Unable to stream container logs", "service", h.Service, "container", h.Name, "error", err)
				yield(Event{Name: "error", Data: StreamErrorMessage})
			}
			return
		}
	}
}

// readLine returns the next line including its terminator. Bytes past limit
// are discarded and truncated is set; the rest of the line is still consumed.
// A non-nil error comes only from the underlying reader.
func readLine(r *bufio.Reader, limit int) (line []byte, truncated bool, err error) {
	for {
		var frag []byte
		frag, err = r.ReadSlice('\n')
		if room := limit - len(line); len(frag) > room {
			if room > 0 {
				line = append(line, frag[:room]...)
			}
			truncated = true
		} else {
			line = append(line, frag...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, truncated, err
	}
}

// Session is one live-log connection: one handle, one runtime reader, one
// client. Events are produced on a separate goroutine so the consumer can
// interleave keepalives and observe disconnects.
type Session struct {
	ID     string
	Handle Handle

	events chan Event
	cancel context.CancelFunc
	done   chan struct{}
}

// Open starts a session. The caller must call Close once it stops reading.
func (s *Streamer) Open(ctx context.Context, h Handle, tail int) *Session {
	ctx, cancel := context.WithCancel(ctx)
	sess := &Session{
		ID:     uuid.NewString(),
		Handle: h,
		events: make(chan Event),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sess.done)
		defer close(sess.events)
		for ev := range s.Stream(ctx, h, tail) {
			select {
			case sess.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Debug("Log stream session opened", "session", sess.ID, "service", h.Service, "container", h.Name, "tail", tail)
	return sess
}

// Events returns the session's event channel. It is closed when the
// sequence ends.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Close cancels the session and waits until the runtime reader is released.
func (s *Session) Close() {
	s.cancel()
	<-s.done
	log.Debug("Log stream session closed", "session", s.ID, "service", s.Handle.Service)
}
