package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// where acumula condiciones y argumentos posicionales ($1, $2, ...).
type where struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" se reemplaza por el siguiente placeholder.
func (w *where) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *where) dateRange(col string, r repository.DateRange) {
	if r.From != nil {
		w.add(col+" >= ?", *r.From)
	}
	if r.To != nil {
		w.add(col+" < ?", *r.To)
	}
}

// sql devuelve " WHERE a AND b" o "".
func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET como placeholders; Limit <= 0 no limita.
func (w *where) page(p repository.Page) string {
	s := ""
	if p.Limit > 0 {
		w.args = append(w.args, p.Limit)
		s += fmt.Sprintf(" LIMIT $%d", len(w.args))
	}
	if p.Offset > 0 {
		w.args = append(w.args, p.Offset)
		s += fmt.Sprintf(" OFFSET $%d", len(w.args))
	}
	return s
}
