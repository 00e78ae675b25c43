package viewer

import (
	"testing"
	"time"

	"github.com/quantaviz/go-wigner/pipeline"
	"github.com/quantaviz/go-wigner/playback"
)

func newTestPlayer(t *testing.T, frames int) *Player {
	t.Helper()
	mesh := [][]float64{{0, 1}, {0, 1}}
	buf, err := pipeline.NewFrameBuffer(mesh, mesh, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < frames; i++ {
		v := float64(i)
		if err := buf.Append([][]float64{{v, v}, {v, v}}); err != nil {
			t.Fatal(err)
		}
	}
	anim, err := playback.NewAnimator(buf, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	return NewPlayer(anim, 60)
}

func recv(t *testing.T, p *Player) FrameUpdate {
	t.Helper()
	select {
	case upd, ok := <-p.Updates():
		if !ok {
			t.Fatal("update channel closed unexpectedly")
		}
		return upd
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame update")
	}
	return FrameUpdate{}
}

func TestPlayerPublishesInitialFrame(t *testing.T) {
	p := newTestPlayer(t, 3)
	p.Start()
	defer p.Stop()

	upd := recv(t, p)
	if upd.Index != 0 || upd.Playing {
		t.Errorf("initial update = index %d playing %v, want index 0 paused", upd.Index, upd.Playing)
	}
	if upd.Total != 3 {
		t.Errorf("Total = %d, want 3", upd.Total)
	}
	if upd.Label != "t = 0.000 (arb. units)" {
		t.Errorf("Label = %q", upd.Label)
	}
}

func TestPlayerSeekClamps(t *testing.T) {
	p := newTestPlayer(t, 3)
	p.Start()
	defer p.Stop()
	recv(t, p) // initial frame

	p.Control() <- ControlMsg{Command: CmdSeek, Frame: 99}
	if upd := recv(t, p); upd.Index != 2 {
		t.Errorf("seek past end landed on %d, want 2", upd.Index)
	}

	p.Control() <- ControlMsg{Command: CmdSeek, Frame: -5}
	if upd := recv(t, p); upd.Index != 0 {
		t.Errorf("seek before start landed on %d, want 0", upd.Index)
	}
}

func TestPlayerResetStopsAndRewinds(t *testing.T) {
	p := newTestPlayer(t, 3)
	p.Start()
	defer p.Stop()
	recv(t, p)

	p.Control() <- ControlMsg{Command: CmdSeek, Frame: 2}
	recv(t, p)
	p.Control() <- ControlMsg{Command: CmdPlay}
	if upd := recv(t, p); !upd.Playing {
		t.Error("play command did not set the playing state")
	}

	p.Control() <- ControlMsg{Command: CmdReset}
	// Ticker updates may be interleaved; drain until the reset shows up.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case upd := <-p.Updates():
			if upd.Index == 0 && !upd.Playing {
				return
			}
		case <-deadline:
			t.Fatal("never observed the reset update")
		}
	}
}

func TestPlayerStopClosesUpdates(t *testing.T) {
	p := newTestPlayer(t, 2)
	p.Start()
	recv(t, p)
	p.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-p.Updates():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("update channel not closed after Stop")
		}
	}
}
