package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sisoputnfrba/simulador-paginacion/kernel/handlers"
	"github.com/sisoputnfrba/simulador-paginacion/kernel/models"
	"github.com/sisoputnfrba/simulador-paginacion/kernel/services"
	memoryModels "github.com/sisoputnfrba/simulador-paginacion/memoria/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, cfg models.Config) string {
	t.Helper()
	content, err := json.Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "kernel.json")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func testConfig() models.Config {
	cfg := models.DefaultConfig()
	cfg.MemorySize = 32
	cfg.ProcessCount = 8
	cfg.MinPages = 2
	cfg.MaxPages = 8
	cfg.LogPath = ""
	cfg.LogLevel = "ERROR"
	cfg.ReportPath = ""
	return cfg
}

func TestRunCommand(t *testing.T) {
	configPath := writeConfig(t, testConfig())
	reportPath := filepath.Join(t.TempDir(), "reporte.html")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run", "--config", configPath, "--report", reportPath, "--policies", "fifo,clock", "--seed", "7"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "FIFO Algorithm:")
	assert.Contains(t, out.String(), "SECOND_CHANCE Algorithm:")
	assert.NotContains(t, out.String(), "LRU Algorithm:")
	assert.FileExists(t, reportPath)
	assert.Equal(t, uint64(7), models.KernelConfig.Seed)
}

func TestRunCommand_MissingExplicitConfig(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--config", filepath.Join(t.TempDir(), "nada.json")})

	assert.Error(t, cmd.Execute())
}

func TestRunCommand_InvalidPolicy(t *testing.T) {
	configPath := writeConfig(t, testConfig())

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--config", configPath, "--policies", "OPT"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, models.ErrInvalidConfig)
}

func TestResultsCommand(t *testing.T) {
	results := []services.TrialResult{{Policy: memoryModels.MRU, Accesses: 10, Faults: 4, FaultRate: 0.4}}
	simulator := httptest.NewServer(http.HandlerFunc(handlers.ResultsHandler(results)))
	defer simulator.Close()

	parsed, err := url.Parse(simulator.URL)
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"results", "--ip", parsed.Hostname(), "--port", parsed.Port()})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.Contains(out.String(), "MRU Algorithm:"))
	assert.Contains(t, out.String(), "Page Fault Rate: 40.00%")
}

func TestConfigSetCommand(t *testing.T) {
	configPath := writeConfig(t, testConfig())

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "set", "--config", configPath, "seed", "99", "policies", `["LRU"]`})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "2 claves actualizadas")

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var cfg models.Config
	require.NoError(t, json.Unmarshal(content, &cfg))
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, []string{"LRU"}, cfg.Policies)
}
