package services

import (
	"fmt"

	"github.com/sisoputnfrba/simulador-paginacion/memoria/models"
)

// selectVictim elige el marco a desalojar. Los empates se resuelven a favor del índice más bajo.
func (t *FrameTable) selectVictim(policy models.Policy, pid uint) (int, error) {
	switch policy {
	case models.FIFO:
		return t.oldestAllocated(), nil
	case models.LRU:
		return t.leastRecentlyUsed(), nil
	case models.MRU:
		return t.mostRecentlyUsed(pid)
	case models.Random:
		return t.randomVictim(pid)
	case models.SecondChance:
		return t.secondChance()
	default:
		return -1, fmt.Errorf("%w: %q", models.ErrUnknownPolicy, policy)
	}
}

func (t *FrameTable) oldestAllocated() int {
	victimIndex := 0
	for i, frame := range t.frames {
		if frame.AllocatedAt < t.frames[victimIndex].AllocatedAt {
			victimIndex = i
		}
	}
	return victimIndex
}

func (t *FrameTable) leastRecentlyUsed() int {
	victimIndex := 0
	for i, frame := range t.frames {
		if frame.LastAccessedAt < t.frames[victimIndex].LastAccessedAt {
			victimIndex = i
		}
	}
	return victimIndex
}

// mostRecentlyUsed ignora los marcos que ya son del proceso que pide.
func (t *FrameTable) mostRecentlyUsed(pid uint) (int, error) {
	victimIndex := -1
	for i, frame := range t.frames {
		if frame.Owner == pid {
			continue
		}
		if victimIndex == -1 || frame.LastAccessedAt > t.frames[victimIndex].LastAccessedAt {
			victimIndex = i
		}
	}
	if victimIndex == -1 {
		return -1, fmt.Errorf("%w: todos los marcos son del PID %d", models.ErrNoVictim, pid)
	}
	return victimIndex, nil
}

func (t *FrameTable) randomVictim(pid uint) (int, error) {
	candidates := make([]int, 0, len(t.frames))
	for i, frame := range t.frames {
		if frame.Owner != pid {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1, fmt.Errorf("%w: todos los marcos son del PID %d", models.ErrNoVictim, pid)
	}
	return candidates[t.rng.IntN(len(candidates))], nil
}

// secondChance avanza el puntero limpiando bits de referencia hasta encontrar uno apagado.
// En dos vueltas siempre encuentra víctima.
func (t *FrameTable) secondChance() (int, error) {
	for range 2 * len(t.frames) {
		current := t.hand
		t.hand = (t.hand + 1) % len(t.frames)

		if t.frames[current].ReferenceBit {
			t.frames[current].ReferenceBit = false
			continue
		}
		return current, nil
	}
	return -1, fmt.Errorf("%w: tabla vacía", models.ErrNoVictim)
}
