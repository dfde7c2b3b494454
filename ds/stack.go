package ds

// Stack is a LIFO over a slice. Pop, Peek and ReplaceLast panic on an empty
// stack; check Len first.
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

func (r *Stack[T]) Push(t T) T {
	r.slice = append(r.slice, t)
	return t
}

func (r *Stack[T]) Pop() T {
	last := r.slice[r.Len()-1]
	var zero T
	r.slice[r.Len()-1] = zero
	r.slice = r.slice[:r.Len()-1]
	return last
}

func (r *Stack[T]) Peek() T {
	return r.slice[r.Len()-1]
}

// ReplaceLast swaps the top element for replacer's result, for value types
// that cannot be changed through Peek.
func (r *Stack[T]) ReplaceLast(replacer func(t T) T) T {
	newLast := replacer(r.slice[r.Len()-1])
	r.slice[r.Len()-1] = newLast
	return newLast
}
