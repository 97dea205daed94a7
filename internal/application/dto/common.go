package dto

import (
	"fmt"
	"time"
)

// DateLayout formato de fechas en query strings (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse listado paginado genérico.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// NewList arma la respuesta; nunca devuelve items null.
func NewList[T any](items []T, p PageRequest, total int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Page: PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total}}
}

// DateRangeQuery rango de fechas opcional en query string.
type DateRangeQuery struct {
	From string `query:"from"` // YYYY-MM-DD inclusive
	To   string `query:"to"`   // YYYY-MM-DD inclusive
}

// Bounds convierte el rango a [from, to+1día). Fechas vacías quedan en nil.
func (q DateRangeQuery) Bounds() (from, to *time.Time, err error) {
	if q.From != "" {
		t, perr := time.ParseInLocation(DateLayout, q.From, time.Local)
		if perr != nil {
			return nil, nil, fmt.Errorf("from: %w", perr)
		}
		from = &t
	}
	if q.To != "" {
		t, perr := time.ParseInLocation(DateLayout, q.To, time.Local)
		if perr != nil {
			return nil, nil, fmt.Errorf("to: %w", perr)
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, fmt.Errorf("from debe ser anterior o igual a to")
	}
	return from, to, nil
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
