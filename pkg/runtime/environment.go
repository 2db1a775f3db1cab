package runtime

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNotIndexable      = errors.New("value is not indexable")
)

func indexError(i, size int) error {
	return fmt.Errorf("%w: %d for size %d", ErrIndexOutOfRange, i, size)
}

type frame struct {
	values map[string]Value
	parent int
}

// MemoryStack holds the dynamic scopes of a running program. Frames live in
// one slice; each records the index of its parent, and the root has parent -1.
type MemoryStack struct {
	frames []frame
}

// NewMemoryStack creates a stack with one empty root frame.
func NewMemoryStack() *MemoryStack {
	m := &MemoryStack{}
	m.frames = append(m.frames, frame{values: make(map[string]Value), parent: -1})
	return m
}

// Depth returns the number of live frames, including the root.
func (m *MemoryStack) Depth() int {
	return len(m.frames)
}

// Push opens a new innermost frame.
func (m *MemoryStack) Push() {
	m.frames = append(m.frames, frame{values: make(map[string]Value), parent: len(m.frames) - 1})
}

// Pop discards the innermost frame and all its bindings. The root frame is
// never popped.
func (m *MemoryStack) Pop() {
	if len(m.frames) <= 1 {
		return
	}
	m.frames[len(m.frames)-1] = frame{}
	m.frames = m.frames[:len(m.frames)-1]
}

// Truncate pops frames until depth frames remain.
func (m *MemoryStack) Truncate(depth int) {
	for len(m.frames) > depth && len(m.frames) > 1 {
		m.Pop()
	}
}

// find returns the index of the innermost frame binding name, or -1.
func (m *MemoryStack) find(name string) int {
	for idx := len(m.frames) - 1; idx >= 0; idx = m.frames[idx].parent {
		if _, ok := m.frames[idx].values[name]; ok {
			return idx
		}
	}
	return -1
}

// Get retrieves a binding, searching outward from the innermost frame.
func (m *MemoryStack) Get(name string) (Value, error) {
	idx := m.find(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
	}
	return m.frames[idx].values[name], nil
}

// Insert binds name in the innermost frame, shadowing any outer binding.
func (m *MemoryStack) Insert(name string, value Value) {
	m.frames[len(m.frames)-1].values[name] = value
}

// Set updates the binding where it currently lives, or inserts it into the
// innermost frame when no frame binds it.
func (m *MemoryStack) Set(name string, value Value) {
	if idx := m.find(name); idx >= 0 {
		m.frames[idx].values[name] = value
		return
	}
	m.Insert(name, value)
}

// Load reads the value addressed by ref. Walking stops early at an
// unpopulated slot, which reads as NoneValue.
func (m *MemoryStack) Load(ref ReferenceValue) (Value, error) {
	value, err := m.Get(ref.Name)
	if err != nil {
		return nil, err
	}
	for _, coord := range ref.Coords {
		if _, ok := value.(NoneValue); ok || value == nil {
			return NoneValue{}, nil
		}
		seq, ok := value.(Sequence)
		if !ok {
			return nil, fmt.Errorf("%w: %s in '%s'", ErrNotIndexable, kindOf(value), ref.Name)
		}
		value, err = seq.At(coord)
		if err != nil {
			return nil, err
		}
	}
	if value == nil {
		return NoneValue{}, nil
	}
	return value, nil
}

// Store writes value through ref. A plain reference binds in the innermost
// frame; a reference with coordinates updates the container in the frame
// where it currently lives.
func (m *MemoryStack) Store(ref ReferenceValue, value Value) error {
	if ref.IsPlain() {
		m.Insert(ref.Name, value)
		return nil
	}
	container, err := m.Get(ref.Name)
	if err != nil {
		return err
	}
	for _, coord := range ref.Coords[:len(ref.Coords)-1] {
		seq, ok := container.(Sequence)
		if !ok {
			return fmt.Errorf("%w: %s in '%s'", ErrNotIndexable, kindOf(container), ref.Name)
		}
		container, err = seq.At(coord)
		if err != nil {
			return err
		}
	}
	seq, ok := container.(Sequence)
	if !ok {
		return fmt.Errorf("%w: %s in '%s'", ErrNotIndexable, kindOf(container), ref.Name)
	}
	return seq.SetAt(ref.Coords[len(ref.Coords)-1], value)
}

// Update writes value through ref like Store, except that a plain reference
// updates the binding where it lives instead of shadowing it.
func (m *MemoryStack) Update(ref ReferenceValue, value Value) error {
	if ref.IsPlain() {
		m.Set(ref.Name, value)
		return nil
	}
	return m.Store(ref, value)
}

// Snapshot returns the bindings visible from the innermost frame.
func (m *MemoryStack) Snapshot() map[string]Value {
	out := make(map[string]Value)
	for idx := len(m.frames) - 1; idx >= 0; idx = m.frames[idx].parent {
		for k, v := range m.frames[idx].values {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
		}
	}
	return out
}

// Keys returns the visible binding names in sorted order.
func (m *MemoryStack) Keys() []string {
	snap := m.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
