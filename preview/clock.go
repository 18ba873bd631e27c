package preview

import "time"

// Clock maps elapsed playback time to a frame index of a looping
// animation.
type Clock struct {
	Delay time.Duration // time per frame
	Frames int // frames per loop
}

// Returns the frame to show after the given elapsed time.
// Degenerate clocks always return 0.
func (self Clock) Frame(elapsed time.Duration) int {
	if self.Delay <= 0 || self.Frames <= 0 || elapsed < 0 { return 0 }
	return int((elapsed/self.Delay) % time.Duration(self.Frames))
}
