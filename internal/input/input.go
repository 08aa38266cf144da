// Package input turns raw terminal bytes and tcell events into arena input events.
package input

import (
	"bufio"
	"strconv"
)

// Kind identifies an input event.
type Kind int

const (
	KeyOther          Kind = iota // Any other key; counts as activity
	Quit                          // q, Q or Ctrl-C
	Pause                         // p toggles the pause state
	ToggleIndicators              // v toggles velocity indicators
	PointerPress                  // Left button pressed
	PointerMove                   // Pointer moved with the left button held
	PointerRelease                // Left button released
	Resize                        // Terminal size changed (tcell only)
)

// Event is one input event. Col and Row are 1-based terminal positions and
// are only meaningful for pointer events.
type Event struct {
	Kind Kind
	Col  int
	Row  int
}

// IsPointer reports whether e carries a position.
func (e Event) IsPointer() bool {
	return e.Kind == PointerPress || e.Kind == PointerMove || e.Kind == PointerRelease
}

// maxPending bounds how many bytes of an unterminated escape sequence are kept
// between reads before they are discarded.
const maxPending = 32

// Stream delivers input bytes via a channel and keeps partial escape sequences
// between reads.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has returned an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadEvents drains all available bytes from the stream (non-blocking) and
// parses them into events in arrival order.
func ReadEvents(s *Stream) []Event {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	events, rest := Parse(buf)
	if len(rest) > 0 && len(rest) < maxPending && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	return events
}

// Parse decodes buf into events. Trailing bytes that may be the start of an
// unfinished mouse sequence are returned as rest.
func Parse(buf []byte) (events []Event, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			events = append(events, keyEvent(b))
			continue
		}

		// ESC at the very end may be a lone Escape or the start of a sequence.
		if i+1 >= len(buf) {
			return events, buf[i:]
		}
		if buf[i+1] != '[' {
			continue // Lone Escape or Alt prefix; the next byte is handled on its own
		}
		if i+2 >= len(buf) {
			return events, buf[i:]
		}

		if buf[i+2] == '<' {
			n, ev, ok, complete := parseSGRMouse(buf[i:])
			if !complete {
				return events, buf[i:]
			}
			if ok {
				events = append(events, ev)
			}
			i += n - 1
			continue
		}

		// Other CSI sequence (arrows, function keys): skip to its final byte.
		j := i + 2
		for j < len(buf) && (buf[j] < 0x40 || buf[j] > 0x7e) {
			j++
		}
		if j >= len(buf) {
			return events, buf[i:]
		}
		events = append(events, Event{Kind: KeyOther})
		i = j
	}
	return events, nil
}

// keyEvent maps a single byte to an event.
func keyEvent(b byte) Event {
	switch b {
	case 'q', 'Q', '\x03':
		return Event{Kind: Quit}
	case 'p', 'P':
		return Event{Kind: Pause}
	case 'v', 'V':
		return Event{Kind: ToggleIndicators}
	default:
		return Event{Kind: KeyOther}
	}
}

// parseSGRMouse parses ESC [ < Btn ; X ; Y M/m at the start of data.
// complete is false when the terminator has not arrived yet; ok is false for
// sequences that are well formed but not left-button press, drag or release.
func parseSGRMouse(data []byte) (n int, ev Event, ok, complete bool) {
	end := 3
	for end < len(data) && end < maxPending {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) {
		if end < maxPending {
			return 0, Event{}, false, false
		}
		return 3, Event{}, false, true
	}
	if data[end] != 'M' && data[end] != 'm' {
		// Garbage: drop the introducer and resume after it.
		return 3, Event{}, false, true
	}
	n = end + 1

	btn, x, y, valid := parseSGRParams(data[3:end])
	if !valid {
		return n, Event{}, false, true
	}

	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0
	if isScroll || buttonID != 0 {
		return n, Event{}, false, true
	}

	ev = Event{Col: x, Row: y}
	switch {
	case data[end] == 'm':
		ev.Kind = PointerRelease
	case isMotion:
		ev.Kind = PointerMove
	default:
		ev.Kind = PointerPress
	}
	return n, ev, true, true
}

// parseSGRParams parses "btn;x;y".
func parseSGRParams(p []byte) (btn, x, y int, ok bool) {
	var fields [3]int
	idx, start := 0, 0
	for i := 0; i <= len(p); i++ {
		if i < len(p) && p[i] != ';' {
			continue
		}
		if idx >= len(fields) {
			return 0, 0, 0, false
		}
		v, err := strconv.Atoi(string(p[start:i]))
		if err != nil || v < 0 {
			return 0, 0, 0, false
		}
		fields[idx] = v
		idx++
		start = i + 1
	}
	if idx != 3 {
		return 0, 0, 0, false
	}
	return fields[0], fields[1], fields[2], true
}
