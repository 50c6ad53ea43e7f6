package ds

// Stack is a LIFO over a growing slice. Pop and Peek report false on an empty stack.
type Stack[T any] struct {
	slice []T
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{
		slice: make([]T, 0),
	}
}

func (r *Stack[T]) Len() int {
	return len(r.slice)
}

func (r *Stack[T]) Push(ts ...T) {
	r.slice = append(r.slice, ts...)
}

// PushReversed pushes ts so that ts[0] is popped first.
func (r *Stack[T]) PushReversed(ts []T) {
	for i := len(ts) - 1; i >= 0; i-- {
		r.slice = append(r.slice, ts[i])
	}
}

func (r *Stack[T]) Pop() (T, bool) {
	last, ok := r.Peek()
	if !ok {
		return last, false
	}
	r.slice = r.slice[:r.Len()-1]
	return last, true
}

func (r *Stack[T]) Peek() (T, bool) {
	if r.Len() == 0 {
		var zero T
		return zero, false
	}
	return r.slice[r.Len()-1], true
}
