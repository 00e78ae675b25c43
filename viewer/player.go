// Package viewer plays a precomputed Wigner frame sequence in a desktop
// window: a player goroutine advances through the buffer on a fixed ticker
// and the Fyne UI renders whatever the player publishes.
package viewer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/quantaviz/go-wigner/playback"
)

// Commands accepted on the player control channel.
const (
	CmdPlay  = "play"
	CmdPause = "pause"
	CmdReset = "reset"
	CmdSeek  = "seek"
)

// ControlMsg is sent from the UI to the player goroutine.
type ControlMsg struct {
	Command string
	Frame   int // target frame for CmdSeek
}

// FrameUpdate is sent from the player goroutine to the UI after every
// change of position or play state.
type FrameUpdate struct {
	Index   int
	Total   int
	Label   string // formatted simulation time
	Values  [][]float64
	Playing bool
}

// Player owns the playback position. It advances on a ticker while
// playing, wraps at the end of the buffer, and clamps explicit seeks.
type Player struct {
	anim *playback.Animator
	fps  int

	mu      sync.Mutex
	frame   int
	playing bool

	updates chan FrameUpdate
	ctrl    chan ControlMsg

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPlayer wraps an animator. fps sets the tick rate while playing.
func NewPlayer(anim *playback.Animator, fps int) *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		anim:    anim,
		fps:     fps,
		updates: make(chan FrameUpdate, 8),
		ctrl:    make(chan ControlMsg, 16),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Updates returns the channel carrying frame updates for the UI.
func (p *Player) Updates() <-chan FrameUpdate { return p.updates }

// Control returns the channel accepting UI commands.
func (p *Player) Control() chan<- ControlMsg { return p.ctrl }

// Start launches the player goroutine and publishes frame 0.
func (p *Player) Start() {
	p.wg.Add(1)
	go p.run()
}

// Stop cancels the player goroutine and waits for it to exit. The update
// channel is closed on exit.
func (p *Player) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *Player) run() {
	defer p.wg.Done()
	defer close(p.updates)

	ticker := time.NewTicker(time.Second / time.Duration(p.fps))
	defer ticker.Stop()

	p.publish()

	for {
		select {
		case <-p.ctx.Done():
			return
		case msg := <-p.ctrl:
			p.handle(msg)
		case <-ticker.C:
			p.mu.Lock()
			playing := p.playing
			p.mu.Unlock()
			if playing {
				p.advance()
			}
		}
	}
}

func (p *Player) handle(msg ControlMsg) {
	p.mu.Lock()
	switch msg.Command {
	case CmdPlay:
		p.playing = true
	case CmdPause:
		p.playing = false
	case CmdReset:
		p.playing = false
		p.frame = 0
	case CmdSeek:
		p.frame = clampIndex(msg.Frame, p.anim.Len())
	default:
		log.Printf("unknown player command: %q", msg.Command)
	}
	p.mu.Unlock()
	p.publish()
}

// advance moves to the next frame, wrapping at the end so playback loops.
func (p *Player) advance() {
	p.mu.Lock()
	p.frame++
	if p.frame >= p.anim.Len() {
		p.frame = 0
	}
	p.mu.Unlock()
	p.publish()
}

func (p *Player) publish() {
	p.mu.Lock()
	idx := p.frame
	playing := p.playing
	p.mu.Unlock()

	upd := FrameUpdate{
		Index:   idx,
		Total:   p.anim.Len(),
		Label:   p.anim.TimeLabel(idx),
		Values:  p.anim.Frame(idx),
		Playing: playing,
	}
	select {
	case p.updates <- upd:
	default:
		log.Println("update channel full, dropping frame update")
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
