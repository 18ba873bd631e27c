// Package preview plays the rain in a terminal, one grid cell per
// terminal cell, so configurations can be tuned without exporting
// frames.
package preview

import "time"
import "context"
import "image/color"

import "github.com/gdamore/tcell/v2"
import "github.com/hashicorp/go-hclog"

import "github.com/tinne26/glyphrain/rain"

// Player draws the frames of a generator on a tcell screen.
type Player struct {
	Screen tcell.Screen // initialized and finalized by Run
	Generator *rain.Generator
	Delay time.Duration // 100ms if zero
	Logger hclog.Logger // nil for no logging
}

// Plays the animation in a loop until the user presses q, Esc or
// Ctrl-C, or until the context is canceled.
func (self *Player) Run(ctx context.Context) error {
	logger := self.Logger
	if logger == nil { logger = hclog.NewNullLogger() }
	err := self.Screen.Init()
	if err != nil { return err }
	defer self.Screen.Fini()
	self.Screen.HideCursor()

	delay := self.Delay
	if delay <= 0 { delay = 100*time.Millisecond }
	clock := Clock{ Delay: delay, Frames: self.Generator.FrameCount() }

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go self.Screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(delay/2)
	defer ticker.Stop()
	start := time.Now()
	current := 0
	self.DrawFrame(current)
	logger.Debug("preview started", "frames", clock.Frames, "delay", delay)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok { return nil }
			switch event := event.(type) {
			case *tcell.EventKey:
				if isQuitKey(event) { return nil }
			case *tcell.EventResize:
				self.Screen.Sync()
				self.DrawFrame(current)
			}
		case now := <-ticker.C:
			frame := clock.Frame(now.Sub(start))
			if frame == current { continue }
			current = frame
			self.DrawFrame(current)
		}
	}
}

func isQuitKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return event.Rune() == 'q' || event.Rune() == 'Q'
	default:
		return false
	}
}

// Draws the given frame on the screen, replacing its contents.
// Cells outside the screen are clipped.
func (self *Player) DrawFrame(frame int) {
	self.Screen.Clear()
	for _, stroke := range self.Generator.Strokes(frame) {
		self.Screen.SetContent(stroke.Col, stroke.Row, stroke.Glyph, nil, StrokeStyle(stroke))
	}
	self.Screen.Show()
}

// Returns the style for a stroke: its color blended over black.
func StrokeStyle(stroke rain.Stroke) tcell.Style {
	r, g, b := overBlack(stroke.Color)
	return tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func overBlack(clr color.NRGBA) (uint8, uint8, uint8) {
	scale := func(channel uint8) uint8 {
		return uint8((uint32(channel)*uint32(clr.A) + 127)/255)
	}
	return scale(clr.R), scale(clr.G), scale(clr.B)
}
