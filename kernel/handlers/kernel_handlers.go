package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sisoputnfrba/simulador-paginacion/kernel/services"
	"github.com/sisoputnfrba/simulador-paginacion/utils/web/server"
)

// ResultsHandler devuelve en JSON los resultados de la última simulación.
func ResultsHandler(results []services.TrialResult) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		slog.Debug(fmt.Sprintf("Se envían los resultados de %d algoritmos", len(results)))
		server.SendJsonResponse(writer, results)
	}
}

// ChartHandler devuelve la página HTML con los gráficos de tiempo y fallos.
func ChartHandler(results []services.TrialResult) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := services.RenderCharts(writer, results); err != nil {
			slog.Error("Error generando los gráficos", "error", err)
			http.Error(writer, "Error al generar los gráficos", http.StatusInternalServerError)
		}
	}
}
