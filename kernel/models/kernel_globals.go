package models

import (
	"errors"
	"fmt"

	memoryModels "github.com/sisoputnfrba/simulador-paginacion/memoria/models"
)

type Config struct {
	MemorySize         int      `json:"memory_size"`
	ProcessCount       int      `json:"process_count"`
	MinPages           int      `json:"min_pages"`
	MaxPages           int      `json:"max_pages"`
	AccessesPerProcess int      `json:"accesses_per_process"`
	Seed               uint64   `json:"seed"`
	Policies           []string `json:"policies"`
	LogLevel           string   `json:"log_level"`
	LogPath            string   `json:"log_path"`
	ReportPath         string   `json:"report_path"`
	DumpPath           string   `json:"dump_path"`
	PortKernel         int      `json:"port_kernel"`
}

var KernelConfig *Config

// DefaultConfig reproduce la corrida de referencia: 1024 marcos y 128 procesos de 16 a 64 páginas.
func DefaultConfig() Config {
	policies := make([]string, 0, len(memoryModels.Policies))
	for _, policy := range memoryModels.Policies {
		policies = append(policies, string(policy))
	}

	return Config{
		MemorySize:         1024,
		ProcessCount:       128,
		MinPages:           16,
		MaxPages:           64,
		AccessesPerProcess: 20,
		Seed:               1,
		Policies:           policies,
		LogLevel:           "INFO",
		LogPath:            "./logs/simulador.log",
		ReportPath:         "./reportes/simulacion.html",
		PortKernel:         8001,
	}
}

var ErrInvalidConfig = errors.New("invalid config")

func (c *Config) Validate() error {
	switch {
	case c.MemorySize < 1:
		return fmt.Errorf("%w: memory_size debe ser positivo (%d)", ErrInvalidConfig, c.MemorySize)
	case c.ProcessCount < 1:
		return fmt.Errorf("%w: process_count debe ser positivo (%d)", ErrInvalidConfig, c.ProcessCount)
	case c.MinPages < 1 || c.MinPages > c.MaxPages:
		return fmt.Errorf("%w: se necesita 1 <= min_pages <= max_pages (%d, %d)", ErrInvalidConfig, c.MinPages, c.MaxPages)
	case c.MaxPages > c.MemorySize:
		return fmt.Errorf("%w: max_pages (%d) supera memory_size (%d)", ErrInvalidConfig, c.MaxPages, c.MemorySize)
	case c.AccessesPerProcess < 0:
		return fmt.Errorf("%w: accesses_per_process no puede ser negativo (%d)", ErrInvalidConfig, c.AccessesPerProcess)
	case c.PortKernel < 0 || c.PortKernel > 65535:
		return fmt.Errorf("%w: port_kernel fuera de rango (%d)", ErrInvalidConfig, c.PortKernel)
	}

	_, err := c.ParsedPolicies()
	return err
}

// ParsedPolicies devuelve los algoritmos configurados, o todos si la lista está vacía.
func (c *Config) ParsedPolicies() ([]memoryModels.Policy, error) {
	if len(c.Policies) == 0 {
		return append([]memoryModels.Policy(nil), memoryModels.Policies...), nil
	}

	policies := make([]memoryModels.Policy, 0, len(c.Policies))
	for _, name := range c.Policies {
		policy, err := memoryModels.ParsePolicy(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		policies = append(policies, policy)
	}
	return policies, nil
}
