package scrollspy

import (
	"math"
	"sync"
)

// SimViewport is a headless Viewport. Scrolling it fires its Emitter, the
// same way a browser window fires scroll events. ScrollTo animates: the
// position only moves when Step or Settle is called.
type SimViewport struct {
	*Emitter

	mu     sync.Mutex
	y      float64
	max    float64
	target float64
	moving bool
}

// NewSimViewport returns a viewport that can scroll between 0 and maxScroll.
func NewSimViewport(maxScroll float64) *SimViewport {
	return &SimViewport{Emitter: NewEmitter(), max: math.Max(0, maxScroll)}
}

func (v *SimViewport) ScrollY() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.y
}

// ScrollTo starts a smooth scroll toward y, clamped to the scrollable range.
func (v *SimViewport) ScrollTo(y float64) {
	v.mu.Lock()
	v.target = v.clamp(y)
	v.moving = v.target != v.y
	v.mu.Unlock()
}

// Jump moves to y immediately, like a user dragging the scrollbar, and
// fires one scroll event if the position changed.
func (v *SimViewport) Jump(y float64) {
	v.mu.Lock()
	y = v.clamp(y)
	changed := y != v.y
	v.y, v.target, v.moving = y, y, false
	v.mu.Unlock()
	if changed {
		v.Emit()
	}
}

// Step advances a running animation by one frame and fires a scroll event.
// It reports whether the animation is still running.
func (v *SimViewport) Step() bool {
	v.mu.Lock()
	if !v.moving {
		v.mu.Unlock()
		return false
	}
	d := v.target - v.y
	if math.Abs(d) <= 1 {
		v.y = v.target
		v.moving = false
	} else {
		v.y += d / 4
	}
	moving := v.moving
	v.mu.Unlock()

	v.Emit()
	return moving
}

// Settle runs the animation to completion and returns the final position.
func (v *SimViewport) Settle() float64 {
	for i := 0; i < 1000 && v.Step(); i++ {
	}
	return v.ScrollY()
}

func (v *SimViewport) clamp(y float64) float64 {
	return math.Min(math.Max(y, 0), v.max)
}
