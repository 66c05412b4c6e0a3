package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// crea un directorio en el path especificado.
func CreateDirectory(dir string) error {
	err := os.MkdirAll(dir, os.ModePerm)

	if err != nil {
		slog.Error(fmt.Sprintf("Error al crear el directorio %s: %v", dir, err))
		return err
	}

	slog.Debug(fmt.Sprintf("Directorio %s creado o ya existía.", dir))
	return nil
}

// GetDumpName arma el nombre del archivo de dump de una corrida, por ejemplo "SECOND_CHANCE-20250101-120000.dmp".
func GetDumpName(label string) string {
	timestamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("%s-%s.dmp", strings.ReplaceAll(label, " ", "_"), timestamp)
}
