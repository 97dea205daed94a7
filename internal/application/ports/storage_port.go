package ports

import (
	"context"
	"io"
)

// FileStore puerto de almacenamiento de archivos (imágenes de ítems, exportaciones).
// Las rutas son relativas a la raíz del store y usan "/" como separador.
type FileStore interface {
	Save(ctx context.Context, relPath string, r io.Reader) (int64, error)
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)
	// Remove no falla si el archivo no existe.
	Remove(ctx context.Context, relPath string) error
}
