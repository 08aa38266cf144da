package client

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/bounce/internal/input"
	"github.com/tomz197/bounce/internal/loop/config"
	"github.com/tomz197/bounce/internal/loop/server"
	"github.com/tomz197/bounce/internal/physics"
	"github.com/tomz197/bounce/internal/sim"
)

type fakeServer struct {
	handle       *server.ClientHandle
	registered   string
	unregistered []int
	pointers     []sim.PointerEvent
	pauses       int
	snapshot     *server.WorldSnapshot
}

var _ server.GameServer = (*fakeServer)(nil)

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	f.registered = username
	f.handle = &server.ClientHandle{ID: 7, Username: username, EventsCh: make(chan server.ClientEvent, 4)}
	return f.handle
}

func (f *fakeServer) UnregisterClient(clientID int) { f.unregistered = append(f.unregistered, clientID) }

func (f *fakeServer) SendPointer(_ int, ev sim.PointerEvent) { f.pointers = append(f.pointers, ev) }

func (f *fakeServer) TogglePause(int) { f.pauses++ }

func (f *fakeServer) GetSnapshot() *server.WorldSnapshot { return f.snapshot }

func newTestClient(t *testing.T, username string) (*Client, *fakeServer, *bytes.Buffer) {
	t.Helper()
	b, err := physics.NewBody(0, r2.Point{X: 500, Y: 350}, r2.Point{X: 10}, 40, colorful.Color{R: 1})
	if err != nil {
		t.Fatal(err)
	}
	fs := &fakeServer{snapshot: &server.WorldSnapshot{
		Bodies:   []physics.Body{b},
		Arena:    sim.Arena{Width: config.ArenaWidth, Height: config.ArenaHeight},
		Policy:   sim.PolicyBounce,
		Viewers:  2,
		TickRate: 50,
	}}
	var out bytes.Buffer
	size := func() (int, int, error) { return 100, 35, nil }
	c := NewClient(fs, bufio.NewReader(strings.NewReader("")), &out, ClientOptions{TermSizeFunc: size, Username: username})
	return c, fs, &out
}

func TestNewClient_RegistersTruncatedName(t *testing.T) {
	_, fs, _ := newTestClient(t, strings.Repeat("x", config.MaxUsernameLength+5))
	if len(fs.registered) != config.MaxUsernameLength {
		t.Errorf("registered name length = %d, expected %d", len(fs.registered), config.MaxUsernameLength)
	}
}

func TestClient_StartScreenEntersArena(t *testing.T) {
	c, fs, _ := newTestClient(t, "ann")
	now := time.Now()

	c.handleInput([]input.Event{{Kind: input.KeyOther}}, now)
	if c.state.View != ViewArena {
		t.Fatalf("View = %v, expected ViewArena", c.state.View)
	}
	if len(fs.pointers) != 0 || fs.pauses != 0 {
		t.Error("the key that left the title screen was forwarded to the server")
	}
}

func TestClient_ForwardsArenaInput(t *testing.T) {
	c, fs, _ := newTestClient(t, "ann")
	c.state.View = ViewArena
	now := time.Now()

	c.handleInput([]input.Event{
		{Kind: input.PointerPress, Col: 51, Row: 18},
		{Kind: input.Pause},
		{Kind: input.ToggleIndicators},
	}, now)

	if len(fs.pointers) != 1 || fs.pointers[0].Action != sim.PointerPress {
		t.Fatalf("pointers = %+v, expected one press", fs.pointers)
	}
	if got := fs.pointers[0].Pos; got.X < 495 || got.X > 505 || got.Y < 340 || got.Y > 360 {
		t.Errorf("press mapped to %v, expected near (500,350)", got)
	}
	if fs.pauses != 1 {
		t.Errorf("pauses = %d, expected 1", fs.pauses)
	}
	if c.state.Indicators {
		t.Error("indicators still on after toggle")
	}
}

func TestClient_QuitStopsLoop(t *testing.T) {
	c, _, _ := newTestClient(t, "ann")
	c.handleInput([]input.Event{{Kind: input.Quit}}, time.Now())
	if c.state.Running {
		t.Error("client still running after quit")
	}
}

func TestClient_Inactivity(t *testing.T) {
	c, _, _ := newTestClient(t, "ann")
	start := c.lastInput

	c.handleInput(nil, start.Add((config.InactivityWarnUser+1)*time.Second))
	if !c.state.isInactive || !c.state.Running {
		t.Fatalf("inactive=%v running=%v, expected a warning", c.state.isInactive, c.state.Running)
	}

	c.handleInput([]input.Event{{Kind: input.KeyOther}}, start.Add((config.InactivityWarnUser+2)*time.Second))
	if c.state.isInactive {
		t.Error("key press did not clear the warning")
	}

	c.handleInput(nil, c.lastInput.Add((config.InactivityDisconnectUser+1)*time.Second))
	if c.state.Running {
		t.Error("client not disconnected after the inactivity limit")
	}
}

func TestClient_ShutdownEventAndCountdown(t *testing.T) {
	c, fs, out := newTestClient(t, "ann")
	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}

	c.processServerEvents()
	if c.state.View != ViewShutdown {
		t.Fatalf("View = %v, expected ViewShutdown", c.state.View)
	}
	if err := c.drawFrame(time.Now()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		t.Error("shutdown screen not drawn")
	}

	c.state.delta = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))
	c.updateShutdownState()
	if c.state.Running {
		t.Error("client still running after the shutdown countdown")
	}
}

func TestClient_ClosedEventsStopsLoop(t *testing.T) {
	c, fs, _ := newTestClient(t, "ann")
	close(fs.handle.EventsCh)
	c.processServerEvents()
	if c.state.Running {
		t.Error("client still running after the server closed its events")
	}
}

func TestClient_DrawArenaHUD(t *testing.T) {
	c, _, out := newTestClient(t, "ann")
	c.state.View = ViewArena

	if err := c.drawFrame(time.Now()); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{"Bodies: 1", "Viewers: 2", "@ann", "q: quit"} {
		if !strings.Contains(s, want) {
			t.Errorf("frame lacks %q", want)
		}
	}
	if c.canvas.Cell(50, 17).Empty() {
		t.Error("body not drawn onto the canvas")
	}
}

func TestClient_StartScreenDrawn(t *testing.T) {
	c, _, out := newTestClient(t, "ann")
	if err := c.drawFrame(time.UnixMilli(0)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Press any key to enter") {
		t.Error("start prompt not drawn")
	}
	if strings.Contains(out.String(), "Viewers:") {
		t.Error("HUD drawn on the title screen")
	}
}
