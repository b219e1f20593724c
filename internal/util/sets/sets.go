package sets

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Ordered is a set that remembers first-insertion order. Iteration via Values
// is deterministic, which keeps diagnostics stable between runs.
type Ordered[T comparable] struct {
	index Set[T]
	order []T
}

// NewOrdered creates an ordered set from vals, dropping later duplicates.
func NewOrdered[T comparable](vals ...T) *Ordered[T] {
	o := &Ordered[T]{index: make(Set[T], len(vals)), order: make([]T, 0, len(vals))}
	for _, v := range vals {
		o.Add(v)
	}
	return o
}

// Add appends v unless already present. It reports whether v was added.
func (o *Ordered[T]) Add(v T) bool {
	if o.index.Has(v) {
		return false
	}
	o.index.Add(v)
	o.order = append(o.order, v)
	return true
}

// Has returns true if v is present.
func (o *Ordered[T]) Has(v T) bool { return o.index.Has(v) }

// Len returns the number of distinct elements.
func (o *Ordered[T]) Len() int { return len(o.order) }

// Values returns a copy of the elements in insertion order.
func (o *Ordered[T]) Values() []T {
	out := make([]T, len(o.order))
	copy(out, o.order)
	return out
}

// Difference returns the elements of o that are not in other, in o's order.
func (o *Ordered[T]) Difference(other *Ordered[T]) *Ordered[T] {
	out := NewOrdered[T]()
	for _, v := range o.order {
		if other == nil || !other.Has(v) {
			out.Add(v)
		}
	}
	return out
}
