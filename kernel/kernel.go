package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	kernelHandler "github.com/sisoputnfrba/simulador-paginacion/kernel/handlers"
	"github.com/sisoputnfrba/simulador-paginacion/kernel/models"
	"github.com/sisoputnfrba/simulador-paginacion/kernel/services"
	"github.com/sisoputnfrba/simulador-paginacion/utils/config"
	"github.com/sisoputnfrba/simulador-paginacion/utils/log"
	"github.com/sisoputnfrba/simulador-paginacion/utils/web/client"
	"github.com/sisoputnfrba/simulador-paginacion/utils/web/handlers"
	"github.com/sisoputnfrba/simulador-paginacion/utils/web/server"
	"github.com/spf13/cobra"
)

const ConfigPath = "kernel/configs/kernel.json"

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	seed       uint64
	policies   []string
	reportPath string
	dumpPath   string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "simulador",
		Short: "Simulador de asignación de marcos con algoritmos de reemplazo",
		Long: `Compara FIFO, LRU, RANDOM, SECOND_CHANCE y MRU sobre una misma población de procesos,
midiendo el tiempo de asignación y los fallos de página de cada algoritmo.`,
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&f.configPath, "config", ConfigPath, "Archivo de configuración JSON")
	rootCmd.PersistentFlags().Uint64Var(&f.seed, "seed", 0, "Semilla de la simulación (pisa la del config)")
	rootCmd.PersistentFlags().StringSliceVar(&f.policies, "policies", nil, "Algoritmos a comparar, ej: FIFO,LRU,CLOCK")
	rootCmd.PersistentFlags().StringVar(&f.reportPath, "report", "", "Archivo HTML donde se guardan los gráficos")
	rootCmd.PersistentFlags().StringVar(&f.dumpPath, "dump", "", "Directorio donde se guarda un dump de marcos por algoritmo")
	rootCmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Nivel de log (DEBUG, INFO, WARN, ERROR)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Corre la simulación e imprime el resumen",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, closeLog, err := simulate(cmd, f)
			if err != nil {
				return err
			}
			defer closeLog()

			services.PrintSummary(cmd.OutOrStdout(), results)
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Corre la simulación y sirve los resultados y gráficos por HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, closeLog, err := simulate(cmd, f)
			if err != nil {
				return err
			}
			defer closeLog()

			services.PrintSummary(cmd.OutOrStdout(), results)

			http.HandleFunc("GET /", handlers.HandshakeHandler("Bienvenido al simulador de paginación"))
			http.HandleFunc("GET /simulacion/resultados", kernelHandler.ResultsHandler(results))
			http.HandleFunc("GET /simulacion/grafico", kernelHandler.ChartHandler(results))

			return server.InitServer(models.KernelConfig.PortKernel)
		},
	}

	var ip string
	var port int
	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "Consulta los resultados de un simulador levantado con serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := client.DoRequest(port, ip, "GET", "simulacion/resultados")
			if err != nil {
				return err
			}
			defer response.Body.Close()

			var results []services.TrialResult
			if err := json.NewDecoder(response.Body).Decode(&results); err != nil {
				return fmt.Errorf("respuesta inválida del simulador: %w", err)
			}
			services.PrintSummary(cmd.OutOrStdout(), results)
			return nil
		},
	}
	resultsCmd.Flags().StringVar(&ip, "ip", "127.0.0.1", "IP del simulador")
	resultsCmd.Flags().IntVar(&port, "port", 8001, "Puerto del simulador")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Administra el archivo de configuración",
	}
	setCmd := &cobra.Command{
		Use:     "set <clave> <valor> [<clave> <valor> ...]",
		Short:   "Modifica claves existentes del archivo de configuración",
		Example: "simulador config set memory_size 512 policies '[\"FIFO\",\"CLOCK\"]'",
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := config.ParseUpdates(args)
			if err != nil {
				return err
			}
			modified, err := config.UpdateFile(f.configPath, updates)
			if err != nil {
				return err
			}

			cfg := models.DefaultConfig()
			if err := config.LoadConfig(f.configPath, &cfg); err != nil {
				return fmt.Errorf("el archivo quedó con valores inválidos: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d claves actualizadas en %s\n", modified, f.configPath)
			return nil
		},
	}
	configCmd.AddCommand(setCmd)

	rootCmd.AddCommand(runCmd, serveCmd, resultsCmd, configCmd)
	return rootCmd
}

// loadConfig lee el archivo de configuración y aplica los flags. Si no se pasó --config y el archivo
// por defecto no existe, se usan los valores por defecto.
func loadConfig(cmd *cobra.Command, f flags) (models.Config, error) {
	cfg := models.DefaultConfig()

	err := config.LoadConfig(f.configPath, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg = models.DefaultConfig()
		err = nil
	}
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	if len(f.policies) > 0 {
		cfg.Policies = f.policies
	}
	if f.reportPath != "" {
		cfg.ReportPath = f.reportPath
	}
	if f.dumpPath != "" {
		cfg.DumpPath = f.dumpPath
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	return cfg, cfg.Validate()
}

func simulate(cmd *cobra.Command, f flags) ([]services.TrialResult, func() error, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, nil, err
	}
	models.KernelConfig = &cfg

	closeLog, err := log.InitLogger(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug(fmt.Sprintf("Configuración cargada: %+v", cfg))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	simulation, err := services.NewSimulation(cfg)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	results, err := simulation.Run(ctx)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	if cfg.ReportPath != "" {
		if err := services.WriteReport(cfg.ReportPath, results); err != nil {
			closeLog()
			return nil, nil, err
		}
	}

	return results, closeLog, nil
}
