// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

// Stack is a generic LIFO container backed by a slice.
type Stack[T any] struct {
	items []T
}

// Push places item on top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the top element. An empty stack yields the zero value.
func (s *Stack[T]) Pop() T {
	var top T
	if n := len(s.items); n > 0 {
		top = s.items[n-1]
		s.items = s.items[:n-1]
	}
	return top
}

// Peek returns the top element without removing it. An empty stack yields the zero value.
func (s *Stack[T]) Peek() T {
	var top T
	if n := len(s.items); n > 0 {
		top = s.items[n-1]
	}
	return top
}

// Len reports how many elements the stack holds.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear drops every element.
func (s *Stack[T]) Clear() {
	s.items = nil
}
