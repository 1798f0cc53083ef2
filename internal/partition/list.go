package partition

// List is the insertion-ordered sequence of partitions owned by a file
// session. Appending transfers ownership to the list; Clear drops every
// reference (Go's GC retires the source's explicit per-element destructor).
type List struct {
	items []*Partition
}

// NewList returns an empty partition list.
func NewList() *List {
	return &List{}
}

// Append adds p to the end of the list, which becomes its owner.
func (l *List) Append(p *Partition) {
	l.items = append(l.items, p)
}

// Len returns the number of partitions in the list.
func (l *List) Len() int {
	return len(l.items)
}

// Last returns the most recently appended partition, or nil if the list is
// empty.
func (l *List) Last() *Partition {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[len(l.items)-1]
}

// At returns the partition at index i.
func (l *List) At(i int) *Partition {
	return l.items[i]
}

// All returns the partitions in insertion (forward) order. The returned
// slice aliases the list's backing array and must not be mutated by the
// caller.
func (l *List) All() []*Partition {
	return l.items
}

// Clear empties the list.
func (l *List) Clear() {
	l.items = nil
}
