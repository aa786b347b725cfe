// Package support holds the small generic plumbing the reducer engine and
// its passes share: a LIFO worklist, postorder traversal, and the hash
// combinator CSE's bucket table is keyed on. None of it is specific to the
// graph domain.
package support

// Stack is a LIFO worklist. The zero value is an empty, usable stack.
type Stack[T any] struct {
	items []T
}

// Push appends v to the top of the stack.
func (s *Stack[T]) Push(v T) { s.items = append(s.items, v) }

// Pop removes and returns the top of the stack. It panics if the stack is
// empty; callers check Len or Empty first.
func (s *Stack[T]) Pop() T {
	n := len(s.items) - 1
	v := s.items[n]
	s.items = s.items[:n]
	return v
}

// Peek returns the top of the stack without removing it.
func (s *Stack[T]) Peek() T { return s.items[len(s.items)-1] }

// Len returns the number of items currently on the stack.
func (s *Stack[T]) Len() int { return len(s.items) }

// Empty reports whether the stack has no items.
func (s *Stack[T]) Empty() bool { return len(s.items) == 0 }
