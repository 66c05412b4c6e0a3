package models

import (
	"errors"
	"fmt"
	"strings"
)

// FreeFrame es el dueño de un marco que no pertenece a ningún proceso. Los PID válidos arrancan en 1.
const FreeFrame uint = 0

// Frame representa un marco de memoria física.
type Frame struct {
	Owner          uint  `json:"owner"`            // PID dueño del marco o FreeFrame
	AllocatedAt    int64 `json:"allocated_at"`     // última (re)asignación, para FIFO
	LastAccessedAt int64 `json:"last_accessed_at"` // último acceso confirmado, para LRU/MRU
	ReferenceBit   bool  `json:"reference_bit"`    // bit de uso, lo consulta y limpia SECOND_CHANCE
}

// IsFree indica si el marco no tiene dueño.
func (f Frame) IsFree() bool {
	return f.Owner == FreeFrame
}

type Policy string

const (
	FIFO         Policy = "FIFO"
	LRU          Policy = "LRU"
	MRU          Policy = "MRU"
	Random       Policy = "RANDOM"
	SecondChance Policy = "SECOND_CHANCE"
)

// Policies es el orden en que se comparan los algoritmos.
var Policies = []Policy{FIFO, LRU, Random, SecondChance, MRU}

// ParsePolicy convierte el nombre de un algoritmo (sin importar mayúsculas) en una Policy.
// CLOCK se acepta como alias de SECOND_CHANCE.
func ParsePolicy(name string) (Policy, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	switch normalized {
	case "FIFO":
		return FIFO, nil
	case "LRU":
		return LRU, nil
	case "MRU":
		return MRU, nil
	case "RANDOM":
		return Random, nil
	case "SECOND_CHANCE", "CLOCK":
		return SecondChance, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

func (p Policy) Valid() bool {
	switch p {
	case FIFO, LRU, MRU, Random, SecondChance:
		return true
	}
	return false
}

// Counters son los contadores de la tabla desde el último reset.
type Counters struct {
	Accesses int `json:"accesses"`
	Faults   int `json:"faults"`
}

// FaultRate devuelve faults/accesses, o 0 si todavía no hubo accesos.
func (c Counters) FaultRate() float64 {
	if c.Accesses == 0 {
		return 0
	}
	return float64(c.Faults) / float64(c.Accesses)
}

// DEFINICION DE ERRORES
var (
	ErrInvalidSize      = errors.New("invalid frame table size")
	ErrInvalidProcess   = errors.New("invalid process id")
	ErrFrameOutOfRange  = errors.New("frame index out of range")
	ErrCountExceedsSize = errors.New("requested frames exceed table size")
	ErrUnknownPolicy    = errors.New("unknown replacement policy")
	ErrInvalidCount     = errors.New("invalid frame count")
	ErrNoVictim         = errors.New("no eligible victim frame")
)
