package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/mitaka/regintake/internal/domain"
)

const collectionFileName = "registrations.json"

// FileRegistrationRepository keeps the collection as one JSON array on
// disk, read fully and overwritten fully on every operation. The mutex
// is the single-writer assumption made explicit: id assignment reads
// the current count, so appends must not interleave.
type FileRegistrationRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRegistrationRepository(dataDir string) (*FileRegistrationRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, domain.StorageError{Op: "init", Err: errors.Wrap(err, "creating data directory")}
	}
	return &FileRegistrationRepository{path: filepath.Join(dataDir, collectionFileName)}, nil
}

func (r *FileRegistrationRepository) Load(ctx context.Context) (domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FileRegistrationRepository) Append(ctx context.Context, fields map[string]string) (domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	regs, err := r.load()
	if err != nil {
		return domain.Registration{}, err
	}

	if fields == nil {
		fields = map[string]string{}
	}
	reg := domain.Registration{
		ID:               len(regs) + 1,
		RegistrationDate: time.Now().UTC().Format(time.RFC3339),
		Fields:           fields,
	}
	regs = append(regs, reg)

	data, err := json.MarshalIndent(regs, "", "  ")
	if err != nil {
		return domain.Registration{}, domain.StorageError{Op: "append", Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return domain.Registration{}, domain.StorageError{Op: "append", Err: err}
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return domain.Registration{}, domain.StorageError{Op: "append", Err: err}
	}

	return reg, nil
}

func (r *FileRegistrationRepository) load() (domain.Collection, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		// first run, nothing persisted yet
		return domain.Collection{}, nil
	}
	if err != nil {
		return nil, domain.StorageError{Op: "load", Err: err}
	}

	var regs domain.Collection
	if err := json.Unmarshal(data, &regs); err != nil {
		// The file stays on disk untouched; the next successful append
		// overwrites it.
		slog.Warn("collection file is malformed, serving empty collection",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
			slog.String("module", "repository"),
		)
		return domain.Collection{}, nil
	}
	return regs, nil
}
