package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// InitServer levanta el servidor HTTP con el mux por defecto. Solo retorna si no pudo escuchar en el puerto.
//
// Parámetros:
//   - port: puerto donde se iniciará el servidor
//
// Ejemplo:
//
//	func main() {
//		err := server.InitServer(models.KernelConfig.PortKernel)
//		if err != nil {
//			panic(err)
//		}
//	}
func InitServer(port int) error {
	addr := ":" + strconv.Itoa(port)
	slog.Info(fmt.Sprintf("Servidor escuchando en %s", addr))

	err := http.ListenAndServe(addr, nil)
	if err != nil {
		slog.Error("Error al escuchar en el puerto "+addr, "error", err)
	}
	return err
}

// SendJsonResponse retorna la respuesta del servidor en formato JSON
//
// Parámetros:
//   - writer: el http.ResponseWriter con el que se escribe la respuesta HTTP
//   - data: cualquier estructura de datos, se convierte automáticamente a JSON.
func SendJsonResponse(writer http.ResponseWriter, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		http.Error(writer, "Error al convertir datos a JSON", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(response)
}
