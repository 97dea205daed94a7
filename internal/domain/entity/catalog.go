package entity

import "time"

// Brand marca (raíz de la jerarquía de catálogo).
type Brand struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemModel modelo dentro de una marca.
type ItemModel struct {
	ID        string
	BrandID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Color color disponible para una marca+modelo.
type Color struct {
	ID        string
	BrandID   string
	ModelID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
