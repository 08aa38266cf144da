package input

import "github.com/gdamore/tcell/v2"

// Translator converts tcell events into arena input events. tcell reports
// button state rather than transitions, so the translator remembers whether
// the left button was down on the previous mouse event.
type Translator struct {
	held bool
}

// Translate maps ev to an Event. ok is false for events with no meaning here.
// tcell positions are 0-based and are converted to 1-based terminal positions.
func (t *Translator) Translate(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return Event{Kind: Quit}, true
		case tcell.KeyRune:
			r := ev.Rune()
			if r < 0x80 {
				return keyEvent(byte(r)), true
			}
		}
		return Event{Kind: KeyOther}, true
	case *tcell.EventMouse:
		x, y := ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0
		e := Event{Col: x + 1, Row: y + 1}
		switch {
		case down && !t.held:
			e.Kind = PointerPress
		case down && t.held:
			e.Kind = PointerMove
		case !down && t.held:
			e.Kind = PointerRelease
		default:
			return Event{}, false // Hover without a button
		}
		t.held = down
		return e, true
	case *tcell.EventResize:
		return Event{Kind: Resize}, true
	}
	return Event{}, false
}
