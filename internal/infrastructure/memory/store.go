// Package memory implementa los puertos de repositorio en memoria.
// Lo usan los tests de casos de uso y de handlers; no persiste nada.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store guarda copias de las entidades; los repositorios devuelven copias nuevas
// para que el llamador no pueda mutar el estado sin pasar por Update.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	items     map[string]entity.Item
	brands    map[string]entity.Brand
	models    map[string]entity.ItemModel
	colors    map[string]entity.Color
	movements []entity.StockMovement
	batches   map[string]entity.StockBatch
	damaged   []entity.DamagedItem
	activity  []entity.ActivityLog
	exports   map[string]entity.ExportNotification
	users     map[string]entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items:   make(map[string]entity.Item),
		brands:  make(map[string]entity.Brand),
		models:  make(map[string]entity.ItemModel),
		colors:  make(map[string]entity.Color),
		batches: make(map[string]entity.StockBatch),
		exports: make(map[string]entity.ExportNotification),
		users:   make(map[string]entity.User),
	}
}

func (s *Store) Items() *ItemRepo          { return &ItemRepo{s: s} }
func (s *Store) Catalog() *CatalogRepo     { return &CatalogRepo{s: s} }
func (s *Store) Movements() *MovementRepo  { return &MovementRepo{s: s} }
func (s *Store) Batches() *BatchRepo       { return &BatchRepo{s: s} }
func (s *Store) Damaged() *DamagedRepo     { return &DamagedRepo{s: s} }
func (s *Store) Activity() *ActivityRepo   { return &ActivityRepo{s: s} }
func (s *Store) Exports() *ExportRepo      { return &ExportRepo{s: s} }
func (s *Store) Users() *UserRepo          { return &UserRepo{s: s} }
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// Repos devuelve el juego de repositorios transaccionales.
func (s *Store) Repos() inventory.TxRepos {
	return inventory.TxRepos{
		Items:     s.Items(),
		Movements: s.Movements(),
		Batches:   s.Batches(),
		Damaged:   s.Damaged(),
		Activity:  s.Activity(),
		Catalog:   s.Catalog(),
	}
}

// Run serializa las transacciones y restaura el estado previo si fn falla.
func (s *Store) Run(ctx context.Context, fn func(r inventory.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s.Repos()); err != nil {
		s.restore(snap)
		return err
	}
	return ctx.Err()
}

type snapshot struct {
	items     map[string]entity.Item
	brands    map[string]entity.Brand
	models    map[string]entity.ItemModel
	colors    map[string]entity.Color
	movements []entity.StockMovement
	batches   map[string]entity.StockBatch
	damaged   []entity.DamagedItem
	activity  []entity.ActivityLog
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		items:     make(map[string]entity.Item, len(s.items)),
		movements: append([]entity.StockMovement(nil), s.movements...),
		batches:   make(map[string]entity.StockBatch, len(s.batches)),
		damaged:   append([]entity.DamagedItem(nil), s.damaged...),
		activity:  append([]entity.ActivityLog(nil), s.activity...),
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	snap.brands = cloneMap(s.brands)
	snap.models = cloneMap(s.models)
	snap.colors = cloneMap(s.colors)
	for k, v := range s.batches {
		snap.batches[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap.items
	s.brands = snap.brands
	s.models = snap.models
	s.colors = snap.colors
	s.movements = snap.movements
	s.batches = snap.batches
	s.damaged = snap.damaged
	s.activity = snap.activity
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func paginate[T any](list []T, p repository.Page) []T {
	if p.Offset >= len(list) {
		return []T{}
	}
	list = list[p.Offset:]
	if p.Limit > 0 && p.Limit < len(list) {
		list = list[:p.Limit]
	}
	return list
}

func inRange(r repository.DateRange, t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && !t.Before(*r.To) {
		return false
	}
	return true
}
