package services

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sisoputnfrba/simulador-paginacion/memoria/helpers"
	"github.com/sisoputnfrba/simulador-paginacion/memoria/models"
)

// ExecuteDumpMemory escribe el estado de la tabla en un archivo .dmp dentro de dumpPath y devuelve su ruta.
func ExecuteDumpMemory(table *FrameTable, dumpPath string, label string) (string, error) {
	slog.Info(fmt.Sprintf("## %s - Memory Dump solicitado", label))

	if err := helpers.CreateDirectory(dumpPath); err != nil {
		return "", err
	}

	dumpFilePath := filepath.Join(dumpPath, helpers.GetDumpName(label))
	file, err := os.Create(dumpFilePath)
	if err != nil {
		slog.Error(fmt.Sprintf("error al crear archivo de dump: %v", err))
		return "", err
	}
	defer file.Close()

	if err := WriteDump(file, table); err != nil {
		slog.Error("Fallo al escribir contenido en el archivo de dump")
		return "", fmt.Errorf("fallo al escribir datos al archivo de dump: %w", err)
	}

	slog.Debug("Dump generado", "path", dumpFilePath)
	return dumpFilePath, nil
}

// WriteDump escribe una línea por marco: índice, dueño, marcas de tiempo y bit de referencia.
func WriteDump(w io.Writer, table *FrameTable) error {
	writer := bufio.NewWriter(w)

	counters := table.SnapshotCounters()
	fmt.Fprintf(writer, "# marcos=%d libres=%d accesos=%d fallos=%d\n",
		table.Size(), table.FreeCount(), counters.Accesses, counters.Faults)

	for i, frame := range table.Frames() {
		owner := "LIBRE"
		if frame.Owner != models.FreeFrame {
			owner = fmt.Sprintf("%d", frame.Owner)
		}
		ref := 0
		if frame.ReferenceBit {
			ref = 1
		}
		fmt.Fprintf(writer, "%d\t%s\t%d\t%d\t%d\n", i, owner, frame.AllocatedAt, frame.LastAccessedAt, ref)
	}

	return writer.Flush()
}
