package scrollspy

import "sync"

// Snapshot is a Layout backed by a map, for layouts measured elsewhere.
// Sections missing from the map are reported as not found.
type Snapshot map[SectionID]Bounds

func (s Snapshot) Bounds(id SectionID) (Bounds, bool) {
	b, ok := s[id]
	return b, ok
}

// StackedLayout places sections one after another starting at offset 0.
// Heights can change after construction to model reflow.
type StackedLayout struct {
	mu      sync.RWMutex
	order   []SectionID
	heights map[SectionID]float64
}

func NewStackedLayout(sections []SectionID, heights []float64) *StackedLayout {
	l := &StackedLayout{heights: make(map[SectionID]float64, len(sections))}
	for i, id := range sections {
		l.order = append(l.order, id)
		if i < len(heights) {
			l.heights[id] = heights[i]
		}
	}
	return l
}

// SetHeight changes the height of one section, shifting every section below.
func (l *StackedLayout) SetHeight(id SectionID, h float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.heights[id]; !ok {
		l.order = append(l.order, id)
	}
	l.heights[id] = h
}

// Remove drops a section from the layout, as if it were unmounted.
func (l *StackedLayout) Remove(id SectionID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.heights, id)
	for i, k := range l.order {
		if k == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *StackedLayout) Bounds(id SectionID) (Bounds, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	top := 0.0
	for _, k := range l.order {
		h := l.heights[k]
		if k == id {
			return Bounds{Top: top, Height: h}, true
		}
		top += h
	}
	return Bounds{}, false
}

// Height returns the total height of the layout.
func (l *StackedLayout) Height() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := 0.0
	for _, k := range l.order {
		total += l.heights[k]
	}
	return total
}
