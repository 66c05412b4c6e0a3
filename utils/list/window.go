package list

// Window es una lista acotada: al superar la capacidad descarta el elemento más viejo.
//
// Ejemplo:
//
//	func main() {
//		recent := list.NewWindow[int](2)
//		recent.Push(1)
//		recent.Push(2)
//		recent.Push(3)
//		fmt.Println(recent.Items()) //output: [2 3]
//	}
type Window[T any] struct {
	items    ArrayList[T]
	capacity int
}

// NewWindow crea una ventana con la capacidad dada. Una capacidad menor a 1 se toma como 1.
func NewWindow[T any](capacity int) *Window[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Window[T]{capacity: capacity}
}

// Push agrega item y, si la ventana se pasa de capacidad, devuelve el elemento descartado.
func (w *Window[T]) Push(item T) (T, bool) {
	w.items.Add(item)

	if w.items.Size() > w.capacity {
		evicted, err := w.items.Dequeue()
		return evicted, err == nil
	}

	var zero T
	return zero, false
}

func (w *Window[T]) Items() []T {
	return w.items.GetAll()
}

func (w *Window[T]) ForEach(callback func(T)) {
	w.items.ForEach(callback)
}

func (w *Window[T]) Len() int {
	return w.items.Size()
}

func (w *Window[T]) Cap() int {
	return w.capacity
}

func (w *Window[T]) Clear() {
	w.items.Clear()
}
