// Package storage guarda archivos en disco local (imágenes de ítems y exportaciones).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/inventory-admin/internal/domain"
)

// LocalStore FileStore sobre un directorio raíz.
type LocalStore struct {
	root string
}

// NewLocalStore crea el directorio raíz si no existe.
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", abs, err)
	}
	return &LocalStore{root: abs}, nil
}

// Root directorio absoluto del store (para servir estáticos).
func (s *LocalStore) Root() string { return s.root }

// Save escribe en un temporal y renombra, así un lector nunca ve un archivo a medias.
func (s *LocalStore) Save(_ context.Context, relPath string, r io.Reader) (int64, error) {
	dst, err := s.resolve(relPath)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("storage: escribir %s: %w", relPath, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}

// Open abre un archivo; ErrNotFound si no existe.
func (s *LocalStore) Open(_ context.Context, relPath string) (io.ReadCloser, error) {
	p, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	return f, err
}

// Remove borra un archivo; no falla si no existe.
func (s *LocalStore) Remove(_ context.Context, relPath string) error {
	p, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve rechaza rutas que escapen de la raíz.
func (s *LocalStore) resolve(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(relPath, "/")))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: ruta %q", domain.ErrInvalidInput, relPath)
	}
	return filepath.Join(s.root, clean), nil
}
