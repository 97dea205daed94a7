// Package imaging normaliza las fotos de ítems: recorte cuadrado centrado,
// reducción de tamaño y recodificación JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"

	"github.com/jhoicas/inventory-admin/internal/domain"
)

// Valores por defecto de Processor.
const (
	DefaultMaxSide   = 800
	DefaultQuality   = 85
	DefaultMaxPixels = 40_000_000
)

// allowedMIME tipos aceptados tras olfatear los bytes (no se confía en el header del cliente).
var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Processor implementa ports.ImageProcessor.
// MaxPixels limita ancho*alto declarado en la cabecera antes de decodificar.
type Processor struct {
	MaxSide   int
	Quality   int
	MaxPixels int
}

// NewProcessor procesador con los valores por defecto.
func NewProcessor() *Processor {
	return &Processor{MaxSide: DefaultMaxSide, Quality: DefaultQuality, MaxPixels: DefaultMaxPixels}
}

// Process devuelve siempre un JPEG cuadrado de lado <= MaxSide.
func (p *Processor) Process(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer imagen: %w", err)
	}
	mime := http.DetectContentType(data)
	if !allowedMIME[mime] {
		return nil, fmt.Errorf("%w: %s (solo JPEG y PNG)", domain.ErrUnsupportedMedia, mime)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedMedia, err)
	}
	if p.MaxPixels > 0 && (cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > p.MaxPixels/cfg.Height) {
		return nil, fmt.Errorf("%w: %dx%d supera %d píxeles", domain.ErrUnsupportedMedia, cfg.Width, cfg.Height, p.MaxPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedMedia, err)
	}

	img = squareCrop(img)
	img = downscale(img, p.MaxSide)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("codificar JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// squareCrop recorta el cuadrado centrado de lado min(ancho, alto).
func squareCrop(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return img
	}
	side := w
	if h < side {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2
	src := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}

// downscale reduce la imagen cuadrada a maxSide con Catmull-Rom; no amplía.
func downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxSide, maxSide))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
