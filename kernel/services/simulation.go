package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sisoputnfrba/simulador-paginacion/kernel/models"
	memoryModels "github.com/sisoputnfrba/simulador-paginacion/memoria/models"
	memoryServices "github.com/sisoputnfrba/simulador-paginacion/memoria/services"
)

// TrialResult resume la corrida de un algoritmo sobre toda la población de procesos.
type TrialResult struct {
	Policy            memoryModels.Policy `json:"policy"`
	TotalTime         time.Duration       `json:"total_time_ns"`
	AvgTimePerProcess time.Duration       `json:"avg_time_per_process_ns"`
	Accesses          int                 `json:"accesses"`
	Faults            int                 `json:"faults"`
	FaultRate         float64             `json:"fault_rate"`
	FailedAllocations int                 `json:"failed_allocations"`
	RejectedRequests  int                 `json:"rejected_requests"`
	DumpFile          string              `json:"dump_file,omitempty"`
}

// Simulation corre cada algoritmo sobre la misma tabla de marcos y la misma población de procesos.
type Simulation struct {
	config     models.Config
	policies   []memoryModels.Policy
	rng        *rand.Rand
	table      *memoryServices.FrameTable
	generators []*WorkloadGenerator
}

// NewSimulation arma la población: procesos con PID 1..ProcessCount y entre MinPages y MaxPages páginas.
// Todas las fuentes aleatorias derivan de config.Seed, así que dos simulaciones con la misma semilla
// producen los mismos accesos.
func NewSimulation(config models.Config) (*Simulation, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	policies, err := config.ParsedPolicies()
	if err != nil {
		return nil, err
	}

	seeds := rand.New(rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15))
	derive := func() *rand.Rand {
		return rand.New(rand.NewPCG(seeds.Uint64(), seeds.Uint64()))
	}

	table, err := memoryServices.NewFrameTable(config.MemorySize, memoryServices.WithRand(derive()))
	if err != nil {
		return nil, err
	}

	generators := make([]*WorkloadGenerator, 0, config.ProcessCount)
	for pid := 1; pid <= config.ProcessCount; pid++ {
		numPages := config.MinPages + seeds.IntN(config.MaxPages-config.MinPages+1)
		generator, err := NewWorkloadGenerator(uint(pid), numPages, derive())
		if err != nil {
			return nil, err
		}
		generators = append(generators, generator)
	}

	return &Simulation{
		config:     config,
		policies:   policies,
		rng:        derive(),
		table:      table,
		generators: generators,
	}, nil
}

func (s *Simulation) Processes() []*WorkloadGenerator {
	return s.generators
}

func (s *Simulation) Table() *memoryServices.FrameTable {
	return s.table
}

// TotalPages es la suma de páginas pedidas por todos los procesos.
func (s *Simulation) TotalPages() int {
	total := 0
	for _, generator := range s.generators {
		total += generator.NumPages()
	}
	return total
}

// Run ejecuta un trial por algoritmo, en el orden configurado. Entre procesos se chequea ctx.
func (s *Simulation) Run(ctx context.Context) ([]TrialResult, error) {
	slog.Info(fmt.Sprintf("Simulación: %d marcos, %d procesos, %d páginas pedidas en total",
		s.table.Size(), len(s.generators), s.TotalPages()))
	for _, generator := range s.generators {
		slog.Debug("Proceso creado", "pid", generator.Pid(), "paginas", generator.NumPages())
	}

	results := make([]TrialResult, 0, len(s.policies))
	for _, policy := range s.policies {
		result, err := s.runTrial(ctx, policy)
		if err != nil {
			return results, fmt.Errorf("trial %s: %w", policy, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Simulation) runTrial(ctx context.Context, policy memoryModels.Policy) (TrialResult, error) {
	result := TrialResult{Policy: policy}
	slog.Info(fmt.Sprintf("## Algoritmo %s", policy))

	s.table.ResetCounters()
	for _, generator := range s.generators {
		generator.Reset()
	}
	defer s.releaseAll()

	allocated := make([]*WorkloadGenerator, 0, len(s.generators))
	for _, generator := range s.generators {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		start := time.Now()
		ok, err := s.table.Allocate(policy, generator.Pid(), generator.NumPages())
		result.TotalTime += time.Since(start)

		switch {
		case err != nil:
			result.RejectedRequests++
			slog.Warn("Pedido de memoria rechazado", "policy", policy, "pid", generator.Pid(), "error", err)
		case !ok:
			result.FailedAllocations++
			slog.Info(fmt.Sprintf("## PID: %d - No se pudieron asignar %d páginas", generator.Pid(), generator.NumPages()))
		default:
			allocated = append(allocated, generator)
		}

		if err := s.accessBurst(allocated); err != nil {
			return result, err
		}
	}

	counters := s.table.SnapshotCounters()
	result.Accesses = counters.Accesses
	result.Faults = counters.Faults
	result.FaultRate = counters.FaultRate()
	result.AvgTimePerProcess = result.TotalTime / time.Duration(len(s.generators))

	if s.config.DumpPath != "" {
		dumpFile, err := memoryServices.ExecuteDumpMemory(s.table, s.config.DumpPath, string(policy))
		if err != nil {
			return result, err
		}
		result.DumpFile = dumpFile
	}

	slog.Info(fmt.Sprintf("## %s - Accesos: %d; Fallos: %d; Tasa: %.2f%%; Tiempo: %v",
		policy, result.Accesses, result.Faults, result.FaultRate*100, result.TotalTime))
	return result, nil
}

// accessBurst simula los accesos posteriores a una asignación. Los procesos con PID bajo
// se eligen con más frecuencia (peso 1/2^pid).
func (s *Simulation) accessBurst(allocated []*WorkloadGenerator) error {
	if len(allocated) == 0 {
		return nil
	}

	weights := make([]float64, len(allocated))
	for i, generator := range allocated {
		weights[i] = math.Ldexp(1, -int(generator.Pid()))
	}

	for range s.config.AccessesPerProcess {
		generator := allocated[weightedIndex(s.rng, weights)]
		page := generator.NextPage()
		if _, err := s.table.Access(generator.Pid(), page); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) releaseAll() {
	for _, generator := range s.generators {
		if _, err := s.table.Release(generator.Pid()); err != nil {
			slog.Error("Error liberando marcos", "pid", generator.Pid(), "error", err)
		}
	}
}
