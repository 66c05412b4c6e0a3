package services

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sisoputnfrba/simulador-paginacion/memoria/helpers"
)

var chartColors = []string{"#1f77b4", "#2ca02c", "#d62728", "#17becf", "#9467bd", "#bcbd22"}

// PrintSummary escribe el resumen por algoritmo: tiempo promedio y total de asignación, fallos y tasa de fallos.
func PrintSummary(w io.Writer, results []TrialResult) {
	for _, result := range results {
		fmt.Fprintf(w, "\n%s Algorithm:\n", result.Policy)
		fmt.Fprintf(w, "Average time taken per process: %.2f milliseconds\n", milliseconds(result.AvgTimePerProcess.Nanoseconds()))
		fmt.Fprintf(w, "Total time taken for allocation: %.2f milliseconds\n", milliseconds(result.TotalTime.Nanoseconds()))
		fmt.Fprintf(w, "Total Page Faults: %d\n", result.Faults)
		fmt.Fprintf(w, "Page Fault Rate: %.2f%%\n", result.FaultRate*100)
		if result.FailedAllocations > 0 || result.RejectedRequests > 0 {
			fmt.Fprintf(w, "Failed allocations: %d, rejected requests: %d\n", result.FailedAllocations, result.RejectedRequests)
		}
	}
}

// BuildCharts arma la página con los dos gráficos de barras: tiempo de asignación y fallos de página.
func BuildCharts(results []TrialResult) *components.Page {
	names := make([]string, 0, len(results))
	times := make([]opts.BarData, 0, len(results))
	faults := make([]opts.BarData, 0, len(results))

	for i, result := range results {
		color := chartColors[i%len(chartColors)]
		names = append(names, string(result.Policy))
		times = append(times, opts.BarData{
			Name:      string(result.Policy),
			Value:     roundTo2(milliseconds(result.TotalTime.Nanoseconds())),
			ItemStyle: &opts.ItemStyle{Color: color},
		})
		faults = append(faults, opts.BarData{
			Name:      string(result.Policy),
			Value:     result.Faults,
			ItemStyle: &opts.ItemStyle{Color: color},
		})
	}

	page := components.NewPage()
	page.PageTitle = "Page replacement comparison"
	page.AddCharts(
		newBarChart("Time taken by each algorithm", "Time (milliseconds)", names, times),
		newBarChart("Page Faults by each algorithm", "Page Faults", names, faults),
	)
	return page
}

func newBarChart(title string, yAxis string, names []string, data []opts.BarData) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Algorithms"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxis}),
	)
	bar.SetXAxis(names).AddSeries(title, data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}

// RenderCharts escribe la página HTML con los gráficos en w.
func RenderCharts(w io.Writer, results []TrialResult) error {
	return BuildCharts(results).Render(w)
}

// WriteReport genera el archivo HTML de la simulación en path, creando el directorio si hace falta.
func WriteReport(path string, results []TrialResult) error {
	if err := helpers.CreateDirectory(filepath.Dir(path)); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		slog.Error(fmt.Sprintf("error al crear el reporte: %v", err))
		return err
	}
	defer file.Close()

	if err := RenderCharts(file, results); err != nil {
		return fmt.Errorf("fallo al generar los gráficos: %w", err)
	}

	slog.Info("Reporte generado", "path", path)
	return nil
}

func milliseconds(nanoseconds int64) float64 {
	return float64(nanoseconds) / 1e6
}

func roundTo2(value float64) float64 {
	return float64(int64(value*100+0.5)) / 100
}
