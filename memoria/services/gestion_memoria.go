package services

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/sisoputnfrba/simulador-paginacion/memoria/models"
)

// Clock entrega las marcas de tiempo con las que se registran asignaciones y accesos.
type Clock interface {
	Now() int64
}

// LogicalClock es un contador monótono: cada lectura devuelve un valor mayor a la anterior.
type LogicalClock struct {
	ticks int64
}

func (c *LogicalClock) Now() int64 {
	c.ticks++
	return c.ticks
}

// FrameTable es la tabla de marcos físicos. No es segura para uso concurrente: cada tabla
// la maneja una sola goroutine durante toda la corrida.
type FrameTable struct {
	frames   []models.Frame
	counters models.Counters
	hand     int // puntero circular de SECOND_CHANCE
	clock    Clock
	rng      *rand.Rand
	logger   *slog.Logger
}

type Option func(*FrameTable)

func WithClock(clock Clock) Option {
	return func(t *FrameTable) {
		t.clock = clock
	}
}

// WithRand inyecta la fuente aleatoria que usa la política RANDOM.
func WithRand(rng *rand.Rand) Option {
	return func(t *FrameTable) {
		t.rng = rng
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *FrameTable) {
		t.logger = logger
	}
}

// NewFrameTable crea una tabla con size marcos, todos libres.
//
// Parámetros:
//   - size: cantidad de marcos físicos
//   - opts: reloj, fuente aleatoria y logger opcionales
//
// Ejemplo:
//
//	func main() {
//		rng := rand.New(rand.NewPCG(1, 2))
//		table, _ := services.NewFrameTable(1024, services.WithRand(rng))
//		table.Allocate(models.FIFO, 1, 16)
//	}
func NewFrameTable(size int, opts ...Option) (*FrameTable, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidSize, size)
	}

	table := &FrameTable{
		frames: make([]models.Frame, size),
	}
	for _, opt := range opts {
		opt(table)
	}

	if table.clock == nil {
		table.clock = &LogicalClock{}
	}
	if table.rng == nil {
		table.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if table.logger == nil {
		table.logger = slog.Default()
	}

	table.logger.Debug("Tabla de marcos inicializada", "tamaño", size)
	return table, nil
}

// Allocate asigna count marcos al proceso pid.
// Si al inicio hay algún marco libre solo se asignan marcos libres, recorriendo desde el primero
// libre; si no alcanzan devuelve false sin desalojar. Si no había ninguno libre se desaloja un
// marco por iteración según la política.
func (t *FrameTable) Allocate(policy models.Policy, pid uint, count int) (bool, error) {
	if err := t.checkProcess(pid); err != nil {
		return false, err
	}
	if !policy.Valid() {
		return false, fmt.Errorf("%w: %q", models.ErrUnknownPolicy, policy)
	}
	if count < 0 {
		return false, fmt.Errorf("%w: %d", models.ErrInvalidCount, count)
	}
	if count > len(t.frames) {
		return false, fmt.Errorf("%w: pedidos %d, tamaño %d", models.ErrCountExceedsSize, count, len(t.frames))
	}
	if count == 0 {
		return true, nil
	}

	if first := t.firstFree(); first != -1 {
		granted := t.fillFree(first, pid, count)
		if granted < count {
			t.logger.Warn("No alcanzan los marcos libres, no se desaloja en esta asignación",
				"pid", pid, "policy", policy, "asignados", granted, "faltantes", count-granted)
			return false, nil
		}
		return true, nil
	}

	if err := t.evict(policy, pid, count); err != nil {
		return false, err
	}
	return true, nil
}

func (t *FrameTable) fillFree(start int, pid uint, count int) int {
	granted := 0
	for i := start; i < len(t.frames) && granted < count; i++ {
		if t.frames[i].IsFree() {
			t.assign(i, pid)
			granted++
		}
	}
	return granted
}

func (t *FrameTable) evict(policy models.Policy, pid uint, count int) error {
	if policy == models.MRU || policy == models.Random {
		// Estas políticas no desalojan marcos del propio proceso.
		if eligible := len(t.frames) - t.countOwnedBy(pid); eligible < count {
			return fmt.Errorf("%w: %s necesita %d marcos ajenos al PID %d y hay %d",
				models.ErrNoVictim, policy, count, pid, eligible)
		}
	}

	for ; count > 0; count-- {
		victim, err := t.selectVictim(policy, pid)
		if err != nil {
			return err
		}
		t.logger.Debug("Reemplazo de marco", "policy", policy, "frame", victim,
			"pid_victima", t.frames[victim].Owner, "pid", pid)
		t.assign(victim, pid)
	}
	return nil
}

func (t *FrameTable) assign(index int, pid uint) {
	now := t.clock.Now()
	t.frames[index] = models.Frame{
		Owner:          pid,
		AllocatedAt:    now,
		LastAccessedAt: now,
		ReferenceBit:   false,
	}
}

// Access registra un acceso del proceso pid al marco frame. Es hit si el marco le pertenece.
// Un fallo no es un error: se cuenta y se devuelve false.
func (t *FrameTable) Access(pid uint, frame int) (bool, error) {
	if err := t.checkProcess(pid); err != nil {
		return false, err
	}
	if frame < 0 || frame >= len(t.frames) {
		return false, fmt.Errorf("%w: %d (tamaño %d)", models.ErrFrameOutOfRange, frame, len(t.frames))
	}

	t.counters.Accesses++
	if t.frames[frame].Owner != pid {
		t.counters.Faults++
		return false, nil
	}

	t.frames[frame].ReferenceBit = true
	t.frames[frame].LastAccessedAt = t.clock.Now()
	return true, nil
}

// Release libera todos los marcos del proceso y devuelve cuántos liberó. No toca los contadores.
func (t *FrameTable) Release(pid uint) (int, error) {
	if err := t.checkProcess(pid); err != nil {
		return 0, err
	}

	released := 0
	for i := range t.frames {
		if t.frames[i].Owner == pid {
			t.frames[i] = models.Frame{Owner: models.FreeFrame}
			released++
		}
	}

	if released > 0 {
		t.logger.Debug("Marcos liberados", "pid", pid, "count", released)
	}
	return released, nil
}

func (t *FrameTable) SnapshotCounters() models.Counters {
	return t.counters
}

func (t *FrameTable) ResetCounters() {
	t.counters = models.Counters{}
}

func (t *FrameTable) Size() int {
	return len(t.frames)
}

// Frames devuelve una copia del estado de los marcos.
func (t *FrameTable) Frames() []models.Frame {
	frames := make([]models.Frame, len(t.frames))
	copy(frames, t.frames)
	return frames
}

// FramesOwnedBy devuelve los índices de los marcos del proceso, en orden.
func (t *FrameTable) FramesOwnedBy(pid uint) []int {
	var owned []int
	for i, frame := range t.frames {
		if frame.Owner == pid {
			owned = append(owned, i)
		}
	}
	return owned
}

func (t *FrameTable) FreeCount() int {
	return t.countOwnedBy(models.FreeFrame)
}

// OwnerCounts devuelve la cantidad de marcos por PID, sin contar los libres.
func (t *FrameTable) OwnerCounts() map[uint]int {
	counts := make(map[uint]int)
	for _, frame := range t.frames {
		if !frame.IsFree() {
			counts[frame.Owner]++
		}
	}
	return counts
}

func (t *FrameTable) firstFree() int {
	for i, frame := range t.frames {
		if frame.IsFree() {
			return i
		}
	}
	return -1
}

func (t *FrameTable) countOwnedBy(pid uint) int {
	count := 0
	for _, frame := range t.frames {
		if frame.Owner == pid {
			count++
		}
	}
	return count
}

func (t *FrameTable) checkProcess(pid uint) error {
	if pid == models.FreeFrame {
		return fmt.Errorf("%w: %d", models.ErrInvalidProcess, pid)
	}
	return nil
}
