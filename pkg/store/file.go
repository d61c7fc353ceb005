package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	tperrors "github.com/matzehuels/tableplan/pkg/errors"
)

// FileStore keeps one JSON file per venue in a directory.
type FileStore struct {
	mu     sync.RWMutex
	dir    string
	logger *log.Logger
}

// fileRecord is the on-disk document. The layout itself uses the wire
// record so files can be fed to `tableplan import` or the HTTP API as is.
type fileRecord struct {
	Venue     string    `json:"venue"`
	UpdatedAt time.Time `json:"updatedAt"`
	LayoutRecord
}

// NewFileStore creates dir if needed. An empty dir defaults to
// ~/.local/share/tableplan/layouts.
func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "tableplan", "layouts")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Dir returns the directory holding the layout files.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(venueID string) string {
	return filepath.Join(s.dir, venueID+".json")
}

func (s *FileStore) Fetch(ctx context.Context, venueID string) (*Document, error) {
	if err := tperrors.ValidateVenueID(venueID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(venueID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, tperrors.Wrap(tperrors.ErrCodeInvalidFormat, err, "parse layout file for %s", venueID)
	}
	doc := DecodeDocument(rec.LayoutRecord, s.logger.With("venue", venueID))
	doc.UpdatedAt = rec.UpdatedAt
	return &doc, nil
}

func (s *FileStore) Put(ctx context.Context, venueID string, doc Document) error {
	if err := tperrors.ValidateVenueID(venueID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := fileRecord{Venue: venueID, UpdatedAt: doc.UpdatedAt, LayoutRecord: EncodeDocument(doc)}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}

	tmp := s.path(venueID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write layout file: %w", err)
	}
	if err := os.Rename(tmp, s.path(venueID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write layout file: %w", err)
	}
	return nil
}

// Venues lists the venues that have a saved layout, sorted.
func (s *FileStore) Venues() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok && !e.IsDir() {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out, nil
}

var _ Store = (*FileStore)(nil)
