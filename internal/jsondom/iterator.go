package jsondom

// Iterator walks a document depth-first in pre-order, yielding a stable path
// per visit. The root's path is [0]; its i-th child extends it with i. Any
// mutation of the document invalidates an iterator in flight.
type Iterator struct {
	doc     *Document
	current *Value
	path    []int
}

// Begin returns an iterator positioned at the root. For an empty document
// the iterator is already at end.
func (d *Document) Begin() *Iterator {
	it := &Iterator{doc: d, current: d.root}
	if it.current != nil {
		it.path = append(it.path, 0)
	}
	return it
}

// End returns the past-the-end iterator.
func (d *Document) End() *Iterator {
	return &Iterator{doc: d}
}

// Value returns the current value, nil at end.
func (it *Iterator) Value() *Value { return it.current }

// IsEnd reports whether the iterator is past the last value.
func (it *Iterator) IsEnd() bool { return it.current == nil }

// Path returns the current path as child indices from the root, inclusive.
func (it *Iterator) Path() []int { return it.path }

// Level returns the depth of the current value; the root is at level 1.
func (it *Iterator) Level() int { return len(it.path) }

// HasPrevSibling reports whether the current value has a sibling before it.
func (it *Iterator) HasPrevSibling() bool {
	return len(it.path) > 0 && it.path[len(it.path)-1] > 0
}

// Next advances to the next value in pre-order and returns it; nil once the
// iterator reaches end.
func (it *Iterator) Next() *Value {
	if it.current == nil {
		return nil
	}
	if it.current.IsContainer() && it.current.ChildCount() > 0 {
		it.path = append(it.path, 0)
		it.current = it.current.ChildAt(0)
		return it.current
	}
	it.current = it.current.parent
	for it.current != nil {
		nextIndex := it.path[len(it.path)-1] + 1
		it.path = it.path[:len(it.path)-1]
		if nextIndex < it.current.ChildCount() {
			it.path = append(it.path, nextIndex)
			it.current = it.current.ChildAt(nextIndex)
			return it.current
		}
		it.current = it.current.parent
	}
	it.path = nil
	return nil
}

// EqualIterators reports whether two iterators of the same document point at
// the same value; all end iterators of one document compare equal.
func EqualIterators(a, b *Iterator) bool {
	if a.doc != b.doc {
		return false
	}
	return a.current == b.current
}
