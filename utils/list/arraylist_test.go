package list

import (
	"fmt"
	"testing"
)

type Person struct {
	id   int
	name string
}

func TestArrayList(t *testing.T) {
	persons := ArrayList[Person]{}
	for i := 1; i <= 3; i++ {
		persons.Add(Person{id: i, name: fmt.Sprintf("test%d", i)})
	}

	if persons.Size() != 3 {
		t.Errorf("Expected size 3, got %d", persons.Size())
	}

	value, err := persons.Dequeue()
	if err != nil || value.id != 1 {
		t.Errorf("Expected id 1 at index 0, got %d", value.id)
	}

	value, err = persons.Get(0)
	if err != nil || value.id != 2 {
		t.Errorf("Expected id 2 at index 0, got %d", value.id)
	}

	if _, err := persons.Get(5); err == nil {
		t.Error("Expected error for index out of range, got nil")
	}

	persons.Clear()
	if _, err := persons.Dequeue(); err == nil {
		t.Error("Expected error for empty list, got nil")
	}
}

func TestArrayList_GetAllReturnsCopy(t *testing.T) {
	numbers := ArrayList[int]{}
	numbers.Add(10)
	numbers.Add(20)

	items := numbers.GetAll()
	items[0] = 99

	value, _ := numbers.Get(0)
	if value != 10 {
		t.Errorf("Expected 10, got %d", value)
	}
}

func TestWindow(t *testing.T) {
	window := NewWindow[int](3)

	for i := 1; i <= 3; i++ {
		if _, evicted := window.Push(i); evicted {
			t.Errorf("Expected no eviction pushing %d", i)
		}
	}

	oldest, evicted := window.Push(4)
	if !evicted || oldest != 1 {
		t.Errorf("Expected 1 to be evicted, got %d (%v)", oldest, evicted)
	}

	items := window.Items()
	if fmt.Sprint(items) != "[2 3 4]" {
		t.Errorf("Expected [2 3 4], got %v", items)
	}

	sum := 0
	window.ForEach(func(n int) { sum += n })
	if sum != 9 {
		t.Errorf("Expected sum 9, got %d", sum)
	}

	window.Clear()
	if window.Len() != 0 {
		t.Errorf("Expected empty window, got %d items", window.Len())
	}
}

func TestWindow_MinimumCapacity(t *testing.T) {
	window := NewWindow[string](0)
	if window.Cap() != 1 {
		t.Errorf("Expected capacity 1, got %d", window.Cap())
	}

	window.Push("a")
	window.Push("b")
	if fmt.Sprint(window.Items()) != "[b]" {
		t.Errorf("Expected [b], got %v", window.Items())
	}
}
