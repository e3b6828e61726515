// Package zipper provides an ordered sequence with a movable focus cursor.
// Left and Right wrap around at the ends; the same policy applies to team
// and channel navigation.
package zipper

// Zipper holds items in order together with a focus index. The zero value is
// an empty zipper with no focus.
type Zipper[T comparable] struct {
	items []T
	pos   int
}

// FromList builds a zipper focused on the first item.
func FromList[T comparable](items []T) *Zipper[T] {
	z := &Zipper[T]{}
	if len(items) > 0 {
		z.items = make([]T, len(items))
		copy(z.items, items)
	}
	return z
}

// Len reports the number of items.
func (z *Zipper[T]) Len() int {
	return len(z.items)
}

// Items returns the items in order.
func (z *Zipper[T]) Items() []T {
	if len(z.items) == 0 {
		return nil
	}
	dup := make([]T, len(z.items))
	copy(dup, z.items)
	return dup
}

// Focus returns the focused item. ok is false for an empty zipper.
func (z *Zipper[T]) Focus() (T, bool) {
	if len(z.items) == 0 {
		var zero T
		return zero, false
	}
	return z.items[z.pos], true
}

// Position returns the focus index, or -1 when empty.
func (z *Zipper[T]) Position() int {
	if len(z.items) == 0 {
		return -1
	}
	return z.pos
}

// Left moves the focus one item to the left, wrapping past the first item.
func (z *Zipper[T]) Left() {
	if len(z.items) == 0 {
		return
	}
	z.pos--
	if z.pos < 0 {
		z.pos = len(z.items) - 1
	}
}

// Right moves the focus one item to the right, wrapping past the last item.
func (z *Zipper[T]) Right() {
	if len(z.items) == 0 {
		return
	}
	z.pos++
	if z.pos >= len(z.items) {
		z.pos = 0
	}
}

// FindRight moves the focus to the nearest item matching pred, searching
// rightward with wrap-around. Reports whether a match was found; focus is
// unchanged otherwise.
func (z *Zipper[T]) FindRight(pred func(T) bool) bool {
	n := len(z.items)
	for i := 1; i <= n; i++ {
		idx := (z.pos + i) % n
		if pred(z.items[idx]) {
			z.pos = idx
			return true
		}
	}
	return false
}

// FocusOn moves the focus to the first item equal to target.
func (z *Zipper[T]) FocusOn(target T) bool {
	for i, item := range z.items {
		if item == target {
			z.pos = i
			return true
		}
	}
	return false
}

// Contains reports whether target is present.
func (z *Zipper[T]) Contains(target T) bool {
	for _, item := range z.items {
		if item == target {
			return true
		}
	}
	return false
}

// Filter removes items not matching pred, preserving relative order. Focus
// moves to the nearest remaining item: the old focus if it survives, else
// the closest survivor to its left, else the first survivor.
func (z *Zipper[T]) Filter(pred func(T) bool) {
	if len(z.items) == 0 {
		return
	}
	kept := make([]T, 0, len(z.items))
	newPos := -1
	leftOf := -1
	for i, item := range z.items {
		if !pred(item) {
			continue
		}
		if i == z.pos {
			newPos = len(kept)
		} else if i < z.pos {
			leftOf = len(kept)
		}
		kept = append(kept, item)
	}
	z.items = kept
	switch {
	case len(kept) == 0:
		z.pos = 0
	case newPos >= 0:
		z.pos = newPos
	case leftOf >= 0:
		z.pos = leftOf
	default:
		z.pos = 0
	}
}

// Insert appends an item and leaves the focus untouched.
func (z *Zipper[T]) Insert(item T) {
	z.items = append(z.items, item)
}

// Remove drops the first item equal to target, adjusting the focus to the
// nearest remaining item. Removing an absent item is a no-op.
func (z *Zipper[T]) Remove(target T) {
	z.Filter(func(item T) bool { return item != target })
}

// MoveLeft swaps the focused item with its left neighbour, wrapping so the
// first item trades places with the last. The focus follows the item.
func (z *Zipper[T]) MoveLeft() {
	n := len(z.items)
	if n < 2 {
		return
	}
	prev := z.pos - 1
	if prev < 0 {
		prev = n - 1
	}
	z.items[z.pos], z.items[prev] = z.items[prev], z.items[z.pos]
	z.pos = prev
}

// MoveRight swaps the focused item with its right neighbour, wrapping.
func (z *Zipper[T]) MoveRight() {
	n := len(z.items)
	if n < 2 {
		return
	}
	next := (z.pos + 1) % n
	z.items[z.pos], z.items[next] = z.items[next], z.items[z.pos]
	z.pos = next
}
