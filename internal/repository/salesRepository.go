package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/dagocoffee/dago-orders-service/internal/domain"
	"github.com/dagocoffee/dago-orders-service/internal/logger"
)

type SalesRepo interface {
	Load() []domain.SaleRecord
	Append(rec domain.SaleRecord) error
}

// SalesRepository keeps the whole sales collection in one JSON file and
// rewrites it on every append. A single mutex serializes read-modify-write
// cycles so concurrent requests cannot drop each other's appends.
type SalesRepository struct {
	mu   sync.Mutex
	path string
}

func NewSalesRepository(dir string) (*SalesRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SalesRepository{path: filepath.Join(dir, "sales.json")}, nil
}

func (r *SalesRepository) Load() []domain.SaleRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *SalesRepository) Append(rec domain.SaleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sales := append(r.load(), rec)
	return r.save(sales)
}

// load never fails: a missing or unparsable file is an empty collection.
func (r *SalesRepository) load() []domain.SaleRecord {
	b, err := os.ReadFile(r.path)
	if err != nil {
		return []domain.SaleRecord{}
	}
	var sales []domain.SaleRecord
	if err := json.Unmarshal(b, &sales); err != nil {
		logger.Warn("sales file unreadable, treating as empty", "path", r.path, "err", err)
		return []domain.SaleRecord{}
	}
	if sales == nil {
		sales = []domain.SaleRecord{}
	}
	return sales
}

func (r *SalesRepository) save(sales []domain.SaleRecord) error {
	b, err := json.MarshalIndent(sales, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}
