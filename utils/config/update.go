package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// ParseUpdates convierte argumentos en pares clave valor. Cada valor se intenta leer como JSON
// (números, booleanos, listas) y si no se puede queda como string.
//
// Ejemplo:
//
//	updates, _ := config.ParseUpdates([]string{"memory_size", "512", "log_level", "DEBUG"})
//	// map[log_level:DEBUG memory_size:512]
func ParseUpdates(args []string) (map[string]interface{}, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, fmt.Errorf("se esperan pares <clave> <valor>, se recibieron %d argumentos", len(args))
	}

	updates := make(map[string]interface{}, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		var parsedValue interface{}
		if err := json.Unmarshal([]byte(args[i+1]), &parsedValue); err != nil {
			parsedValue = args[i+1]
		}
		updates[args[i]] = parsedValue
	}
	return updates, nil
}

// UpdateFile pisa en el archivo JSON las claves que ya existen y devuelve cuántas modificó.
// Las claves desconocidas se ignoran para no ensuciar el archivo.
func UpdateFile(path string, updates map[string]interface{}) (int, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(fileContent, &data); err != nil {
		return 0, fmt.Errorf("error al parsear JSON en el archivo %s: %w", path, err)
	}

	modified := 0
	for key, value := range updates {
		if _, ok := data[key]; !ok {
			slog.Warn("Clave inexistente en la configuración", "clave", key, "path", path)
			continue
		}
		data[key] = value
		modified++
		slog.Debug(fmt.Sprintf("Modificada '%s' en %s a '%v'", key, path, value))
	}

	if modified == 0 {
		return 0, nil
	}

	newJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, append(newJSON, '\n'), 0644); err != nil {
		return 0, err
	}
	return modified, nil
}
