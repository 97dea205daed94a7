package ports

import (
	"io"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// ImageProcessor normaliza una imagen subida: recorte cuadrado centrado,
// reducción de tamaño y recodificación JPEG. Devuelve domain.ErrUnsupportedMedia
// si el contenido no es una imagen soportada.
type ImageProcessor interface {
	Process(r io.Reader) ([]byte, error)
}

// LabelRenderer genera la etiqueta imprimible (PDF con código de barras) de un ítem.
type LabelRenderer interface {
	ItemLabel(item *entity.Item) ([]byte, error)
}

// CodeGenerator genera los códigos de negocio de un ítem.
type CodeGenerator interface {
	ItemCode() string
	SKU(brand, model, color string) string
	Barcode() string
}
