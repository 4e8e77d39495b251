package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/dagocoffee/dago-orders-service/internal/domain"
	"github.com/dagocoffee/dago-orders-service/internal/logger"
)

type FinanceRepo interface {
	Load() domain.FinanceData
	Update(fn func(*domain.FinanceData)) error
}

// FinanceRepository owns finance_data.json. Update runs the mutation under
// the file mutex so the read-modify-write cycle is atomic per process.
type FinanceRepository struct {
	mu   sync.Mutex
	path string
}

func NewFinanceRepository(dir string) (*FinanceRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FinanceRepository{path: filepath.Join(dir, "finance_data.json")}, nil
}

func (r *FinanceRepository) Load() domain.FinanceData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FinanceRepository) Update(fn func(*domain.FinanceData)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data := r.load()
	fn(&data)
	return r.save(data)
}

func (r *FinanceRepository) load() domain.FinanceData {
	var data domain.FinanceData
	b, err := os.ReadFile(r.path)
	if err != nil {
		data.EnsureDefaults()
		return data
	}
	if err := json.Unmarshal(b, &data); err != nil {
		logger.Warn("finance file unreadable, treating as empty", "path", r.path, "err", err)
		data = domain.FinanceData{}
	}
	data.EnsureDefaults()
	return data
}

func (r *FinanceRepository) save(data domain.FinanceData) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}
