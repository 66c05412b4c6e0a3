package services

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sisoputnfrba/simulador-paginacion/kernel/models"
	memoryModels "github.com/sisoputnfrba/simulador-paginacion/memoria/models"
)

// WorkloadGenerator genera los accesos a página de un proceso, sesgados por localidad espacial
// alrededor de las últimas páginas visitadas.
type WorkloadGenerator struct {
	process *models.Process
	rng     *rand.Rand
}

// NewWorkloadGenerator crea el generador de un proceso con numPages páginas lógicas.
//
// Ejemplo:
//
//	func main() {
//		rng := rand.New(rand.NewPCG(1, 2))
//		generator, _ := services.NewWorkloadGenerator(1, 32, rng)
//		page := generator.NextPage()
//	}
func NewWorkloadGenerator(pid uint, numPages int, rng *rand.Rand) (*WorkloadGenerator, error) {
	if pid == memoryModels.FreeFrame {
		return nil, fmt.Errorf("%w: %d", memoryModels.ErrInvalidProcess, pid)
	}
	if numPages < 1 {
		return nil, fmt.Errorf("%w: el PID %d necesita al menos una página (%d)", memoryModels.ErrInvalidProcess, pid, numPages)
	}
	if rng == nil {
		return nil, errors.New("workload generator needs a random source")
	}

	return &WorkloadGenerator{
		process: models.NewProcess(pid, numPages),
		rng:     rng,
	}, nil
}

func (g *WorkloadGenerator) Pid() uint {
	return g.process.Pid
}

func (g *WorkloadGenerator) NumPages() int {
	return g.process.NumPages
}

// NextPage sortea la próxima página y la agrega a las recientes.
func (g *WorkloadGenerator) NextPage() int {
	page := weightedIndex(g.rng, g.weights())
	g.process.RecentPages.Push(page)
	return page
}

// Weights devuelve la distribución normalizada que usaría el próximo NextPage.
func (g *WorkloadGenerator) Weights() []float64 {
	weights := g.weights()

	total := 0.0
	for _, weight := range weights {
		total += weight
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// weights arranca en 1 por página; cada página reciente (de la más vieja a la más nueva)
// se reduce a la mitad y duplica a sus vecinas.
func (g *WorkloadGenerator) weights() []float64 {
	numPages := g.process.NumPages
	weights := make([]float64, numPages)
	for i := range weights {
		weights[i] = 1
	}

	g.process.RecentPages.ForEach(func(page int) {
		weights[page] *= 0.5
		if page-1 >= 0 {
			weights[page-1] *= 2
		}
		if page+1 < numPages {
			weights[page+1] *= 2
		}
	})
	return weights
}

// Window devuelve las páginas recientes, de la más vieja a la más nueva.
func (g *WorkloadGenerator) Window() []int {
	return g.process.RecentPages.Items()
}

// Reset olvida las páginas recientes; la secuencia vuelve a arrancar sin sesgo.
func (g *WorkloadGenerator) Reset() {
	g.process.RecentPages.Clear()
}

// weightedIndex sortea un índice con probabilidad proporcional a su peso. Los pesos no necesitan sumar 1.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, weight := range weights {
		total += weight
	}

	target := rng.Float64() * total
	last := -1
	for i, weight := range weights {
		if weight <= 0 {
			continue
		}
		if target < weight {
			return i
		}
		target -= weight
		last = i
	}
	if last == -1 {
		// Todos los pesos se fueron a cero: sorteo uniforme.
		return rng.IntN(len(weights))
	}
	// Redondeo: el sorteo cayó justo al final.
	return last
}
