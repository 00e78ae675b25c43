package viewer

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/quantaviz/go-wigner/config"
)

// UI holds the viewer window and the widgets fed by a Player.
type UI struct {
	App    fyne.App
	Window fyne.Window

	plot        *canvas.Raster
	timeLabel   *widget.Label
	frameLabel  *widget.Label
	frameSlider *widget.Slider
	playButton  *widget.Button
	pauseButton *widget.Button
	resetButton *widget.Button

	vmin, vmax float64
	ramp       [3][3]float64

	mu   sync.Mutex
	last FrameUpdate

	player *Player
}

// Run builds the window, starts the player and blocks until the window
// closes.
func Run(player *Player, disp config.DisplayConfig, totalFrames int) {
	a := app.New()
	w := a.NewWindow("Wigner function playback")

	ui := &UI{
		App:    a,
		Window: w,
		vmin:   disp.VMin,
		vmax:   disp.VMax,
		ramp:   disp.Colormap,
		player: player,
	}

	ui.timeLabel = widget.NewLabel("t = 0.000 (arb. units)")
	ui.timeLabel.Alignment = fyne.TextAlignTrailing

	ui.frameLabel = widget.NewLabel("frame 0")

	ui.frameSlider = widget.NewSlider(0, float64(totalFrames-1))
	ui.frameSlider.Step = 1
	ui.frameSlider.OnChanged = func(v float64) {
		ui.mu.Lock()
		current := ui.last.Index
		ui.mu.Unlock()
		if int(v) == current {
			return // echo of a player-driven update
		}
		ui.send(ControlMsg{Command: CmdSeek, Frame: int(v)})
	}

	ui.playButton = widget.NewButton("Play", func() { ui.send(ControlMsg{Command: CmdPlay}) })
	ui.pauseButton = widget.NewButton("Pause", func() { ui.send(ControlMsg{Command: CmdPause}) })
	ui.resetButton = widget.NewButton("Reset", func() { ui.send(ControlMsg{Command: CmdReset}) })

	ui.plot = canvas.NewRaster(ui.draw)
	ui.plot.SetMinSize(fyne.NewSize(576, 576))

	controls := container.NewVBox(
		container.NewHBox(ui.playButton, ui.pauseButton, ui.resetButton),
		ui.frameSlider,
		container.NewBorder(nil, nil, ui.frameLabel, ui.timeLabel),
	)
	w.SetContent(container.NewBorder(nil, controls, nil, nil, ui.plot))

	player.Start()
	go ui.updateLoop()

	w.SetOnClosed(func() { player.Stop() })
	w.Resize(fyne.NewSize(640, 720))
	w.ShowAndRun()
}

func (ui *UI) send(msg ControlMsg) {
	select {
	case ui.player.Control() <- msg:
	default:
		log.Printf("control channel full, dropping %q", msg.Command)
	}
}

// updateLoop receives player updates and refreshes the widgets. It exits
// when the player closes its update channel.
func (ui *UI) updateLoop() {
	for upd := range ui.player.Updates() {
		ui.mu.Lock()
		ui.last = upd
		ui.mu.Unlock()

		ui.timeLabel.SetText(upd.Label)
		ui.frameLabel.SetText(fmt.Sprintf("frame %d / %d", upd.Index, upd.Total-1))
		ui.frameSlider.SetValue(float64(upd.Index))
		ui.plot.Refresh()
	}
	log.Println("viewer update loop finished (update channel closed)")
}

// draw renders the current frame as a heatmap through the diverging ramp,
// clamped to the fixed [vmin, vmax] band so colors stay comparable across
// frames.
func (ui *UI) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	ui.mu.Lock()
	data := ui.last.Values
	ui.mu.Unlock()

	if len(data) == 0 || len(data[0]) == 0 {
		drawPlaceholder(img, color.NRGBA{R: 20, G: 20, B: 40, A: 255})
		return img
	}

	rows := len(data)
	cols := len(data[0])
	for y := 0; y < h; y++ {
		// Row 0 is the lowest momentum; draw it at the bottom.
		r := (h - 1 - y) * rows / h
		for x := 0; x < w; x++ {
			c := x * cols / w
			val := data[r][c]
			if math.IsNaN(val) || math.IsInf(val, 0) {
				img.Set(x, y, color.RGBA{R: 255, G: 0, B: 255, A: 255})
				continue
			}
			img.Set(x, y, ui.rampColor(val))
		}
	}
	return img
}

// rampColor maps a value through the three-stop diverging ramp over
// [vmin, vmax], clamping outside the band.
func (ui *UI) rampColor(v float64) color.Color {
	t := (v - ui.vmin) / (ui.vmax - ui.vmin)
	t = math.Max(0, math.Min(1, t))

	var lo, hi [3]float64
	var f float64
	if t < 0.5 {
		lo, hi = ui.ramp[0], ui.ramp[1]
		f = t * 2
	} else {
		lo, hi = ui.ramp[1], ui.ramp[2]
		f = (t - 0.5) * 2
	}
	mix := func(a, b float64) uint8 {
		return uint8(math.Round(255 * (a + (b-a)*f)))
	}
	return color.NRGBA{R: mix(lo[0], hi[0]), G: mix(lo[1], hi[1]), B: mix(lo[2], hi[2]), A: 255}
}

func drawPlaceholder(img *image.RGBA, c color.Color) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}
