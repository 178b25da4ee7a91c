// Package scrollspy tracks which page section is in view for a given scroll
// position and moves the viewport to a section on request.
package scrollspy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultBias moves the detection point below the top of the viewport so a
// section becomes active once its heading clears the fixed nav bar.
const DefaultBias = 100.0

var (
	ErrNoSections       = errors.New("scrollspy: no sections")
	ErrDuplicateSection = errors.New("scrollspy: duplicate section")
)

// SectionID names one vertically stacked region of the page.
type SectionID string

// Bounds is the live layout of a section.
type Bounds struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Contains reports whether y falls in [Top, Top+Height).
func (b Bounds) Contains(y float64) bool {
	return y >= b.Top && y < b.Top+b.Height
}

// Layout reports where a section currently sits. ok is false when the
// section cannot be located.
type Layout interface {
	Bounds(id SectionID) (b Bounds, ok bool)
}

// Viewport is the scrolling surface. ScrollTo starts a smooth scroll and
// returns without waiting for it to finish.
type Viewport interface {
	ScrollY() float64
	ScrollTo(y float64)
}

// Subscription is a handle on a registered listener.
type Subscription interface {
	Unsubscribe()
}

// EventSource delivers scroll notifications.
type EventSource interface {
	Subscribe(fn func()) Subscription
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithBias overrides DefaultBias.
func WithBias(bias float64) Option {
	return func(t *Tracker) { t.bias = bias }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

type observer struct {
	key int
	fn  func(SectionID)
}

// Tracker owns the active section value. Observers are notified in
// registration order.
type Tracker struct {
	sections []SectionID
	bias     float64
	layout   Layout
	viewport Viewport
	log      zerolog.Logger

	mu        sync.Mutex
	active    SectionID
	mount     *mount
	observers []observer
	nextObs   int
}

// New returns a tracker over sections, given in document order. The first
// section is active until a scroll selects another one.
func New(sections []SectionID, layout Layout, viewport Viewport, opts ...Option) (*Tracker, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	seen := make(map[SectionID]struct{}, len(sections))
	for _, id := range sections {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, id)
		}
		seen[id] = struct{}{}
	}

	t := &Tracker{
		sections: append([]SectionID(nil), sections...),
		bias:     DefaultBias,
		layout:   layout,
		viewport: viewport,
		log:      zerolog.Nop(),
		active:   sections[0],
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Sections returns the known sections in document order.
func (t *Tracker) Sections() []SectionID {
	return append([]SectionID(nil), t.sections...)
}

// Bias returns the lookahead added to the scroll offset.
func (t *Tracker) Bias() float64 {
	return t.bias
}

// Active returns the section currently in view.
func (t *Tracker) Active() SectionID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Select returns the first section, in document order, whose bounds contain
// the effective position y. Sections the layout cannot locate are skipped.
func (t *Tracker) Select(y float64) (SectionID, bool) {
	for _, id := range t.sections {
		b, ok := t.layout.Bounds(id)
		if !ok {
			t.log.Debug().Str("section", string(id)).Msg("section not in layout, skipping")
			continue
		}
		if b.Contains(y) {
			return id, true
		}
	}
	return "", false
}

// Recompute reads the scroll position and layout and updates the active
// section. Observers are notified only when the value changes. When no
// section matches the previous value is kept.
func (t *Tracker) Recompute() (SectionID, bool) {
	y := t.viewport.ScrollY() + t.bias
	id, ok := t.Select(y)

	t.mu.Lock()
	if !ok || id == t.active {
		cur := t.active
		t.mu.Unlock()
		return cur, false
	}
	t.active = id
	observers := append([]observer(nil), t.observers...)
	t.mu.Unlock()

	t.log.Debug().Str("section", string(id)).Float64("position", y).Msg("active section changed")
	for _, o := range observers {
		o.fn(id)
	}
	return id, true
}

// Navigate smooth-scrolls the viewport to the top of the section. It reports
// false and does nothing when the section cannot be located. The active
// value follows from the scroll events the motion produces.
func (t *Tracker) Navigate(id SectionID) bool {
	b, ok := t.layout.Bounds(id)
	if !ok {
		t.log.Debug().Str("section", string(id)).Msg("navigate target not found")
		return false
	}
	t.viewport.ScrollTo(b.Top)
	return true
}

// OnChange registers fn to receive every new active section. The returned
// func removes it.
func (t *Tracker) OnChange(fn func(SectionID)) (cancel func()) {
	t.mu.Lock()
	key := t.nextObs
	t.nextObs++
	t.observers = append(t.observers, observer{key: key, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			for i, o := range t.observers {
				if o.key == key {
					t.observers = append(t.observers[:i:i], t.observers[i+1:]...)
					break
				}
			}
			t.mu.Unlock()
		})
	}
}

// Watch streams active section changes until ctx is done. A slow reader
// sees only the latest value.
func (t *Tracker) Watch(ctx context.Context) <-chan SectionID {
	ch := make(chan SectionID, 1)
	var mu sync.Mutex
	closed := false

	cancel := t.OnChange(func(id SectionID) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case <-ch:
		default:
		}
		ch <- id
	})

	go func() {
		<-ctx.Done()
		cancel()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()
	return ch
}

// Mount subscribes the tracker to src. A previous mount is released first.
func (t *Tracker) Mount(src EventSource) Subscription {
	m := &mount{tracker: t}

	t.mu.Lock()
	prev := t.mount
	t.mount = m
	t.mu.Unlock()

	if prev != nil {
		prev.Unsubscribe()
	}
	m.sub = src.Subscribe(m.handle)
	return m
}

type mount struct {
	tracker *Tracker
	once    sync.Once
	sub     Subscription

	mu       sync.Mutex
	released bool
}

func (m *mount) handle() {
	m.mu.Lock()
	released := m.released
	m.mu.Unlock()
	if released {
		return
	}
	m.tracker.Recompute()
}

func (m *mount) Unsubscribe() {
	m.once.Do(func() {
		m.mu.Lock()
		m.released = true
		m.mu.Unlock()

		if m.sub != nil {
			m.sub.Unsubscribe()
		}
		t := m.tracker
		t.mu.Lock()
		if t.mount == m {
			t.mount = nil
		}
		t.mu.Unlock()
	})
}
