package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// InitLogger permite loguear tanto en consola como en archivo según el nivel que se le pase.
//
// Parámetros:
//   - logPath: la ubicación donde se va encontrar el archivo, si está vacío solo se loguea por consola
//   - logLevel: nivel de logueo, este dato viene definido en el archivo de config.
//
// Ejemplo:
//
//	func main() {
//		closeLog, err := log.InitLogger("./logs/simulador.log", "INFO")
//		if err != nil {
//			panic(err)
//		}
//		defer closeLog()
//	}
func InitLogger(logPath string, logLevel string) (func() error, error) {
	if logPath == "" {
		SetDefault(os.Stdout, logLevel)
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), os.ModePerm); err != nil {
		return nil, fmt.Errorf("no se pudo crear el directorio de logs: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		return nil, err
	}

	// Consola y archivo a la vez.
	SetDefault(io.MultiWriter(os.Stdout, logFile), logLevel)
	slog.Debug("Se ha configurado correctamente el logger y el archivo de configuración. ")

	return logFile.Close, nil
}

// SetDefault configura slog para escribir en w con el nivel indicado.
func SetDefault(w io.Writer, logLevel string) {
	slog.SetDefault(NewLogger(w, logLevel))
}

// NewLogger arma un logger de texto. Un nivel desconocido queda en INFO y se avisa con un warning.
func NewLogger(w io.Writer, logLevel string) *slog.Logger {
	level, err := convertStringToLogLevel(logLevel)

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)

	if err != nil {
		logger.Warn(err.Error())
	}
	return logger
}

// convertStringToLogLevel modifica dinámicamente el nivel de log que deseamos tener en el sistema.
func convertStringToLogLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("No existe %s, se coloca INFO por defecto. ", levelStr)
	}
}
