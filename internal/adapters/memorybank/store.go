// Package memorybank persists finished reports per ticker across runs. The
// durable layout is a single TOML file rewritten atomically on every store.
package memorybank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bjornf-dev/stockscout/internal/domain"
	"github.com/bjornf-dev/stockscout/internal/ports"
)

const (
	memoryPathKey   = "memory.path"
	memoryConfigDir = ".stockscout"
	memoryFile      = "memory.toml"
	memoryFileMode  = 0o600
	memoryDirMode   = 0o700
	tempFilePattern = ".memory-*.toml.tmp"
)

type Store struct {
	path    string
	mu      sync.RWMutex
	records map[string][]domain.MemoryRecord
	clock   ports.Clock
}

var _ ports.MemoryStore = (*Store)(nil)

// New resolves the durable file location from cfg and loads any existing
// history. A missing file means no history; an unreadable or malformed file
// is a fatal construction error.
func New(cfg *viper.Viper, clock ports.Clock) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(memoryPathKey, filepath.Join(homeDir, memoryConfigDir, memoryFile))

	path := cfg.GetString(memoryPathKey)
	if path == "" {
		return nil, errors.New("memory bank path is empty")
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve memory bank path: %w", err)
	}

	store := &Store{
		path:    filepath.Clean(path),
		records: make(map[string][]domain.MemoryRecord),
		clock:   clock,
	}

	if err := store.load(); err != nil {
		return nil, err
	}

	return store, nil
}

// Store appends a record for the ticker and persists the full bank before
// committing the append in memory. On a failed persist the in-memory state is
// left unchanged, so reads never run ahead of durable state.
func (s *Store) Store(ctx context.Context, ticker string, report domain.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := domain.MemoryRecord{
		Ticker:   ticker,
		StoredAt: s.clock.Now(),
		Report:   report,
	}

	next := make([]domain.MemoryRecord, 0, len(s.records[ticker])+1)
	next = append(next, s.records[ticker]...)
	next = append(next, record)

	if err := s.persist(ticker, next); err != nil {
		return &domain.PersistenceError{Op: "persist memory bank", Err: err}
	}

	s.records[ticker] = next
	return nil
}

// RetrieveLatest returns the most recent record for the ticker.
func (s *Store) RetrieveLatest(ctx context.Context, ticker string) (domain.MemoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MemoryRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.records[ticker]
	if len(history) == 0 {
		return domain.MemoryRecord{}, domain.ErrNoAnalysis
	}

	return history[len(history)-1], nil
}

// RetrieveHistory returns all records for the ticker in append order. An
// unknown ticker yields an empty slice.
func (s *Store) RetrieveHistory(ctx context.Context, ticker string) ([]domain.MemoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]domain.MemoryRecord, len(s.records[ticker]))
	copy(history, s.records[ticker])
	return history, nil
}

// Tickers returns every ticker with stored history, sorted.
func (s *Store) Tickers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickers := make([]string, 0, len(s.records))
	for ticker := range s.records {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read memory bank file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode memory bank file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return err
	}

	for _, entry := range file.Records {
		record, err := fromSchema(entry)
		if err != nil {
			return fmt.Errorf("decode memory bank file: %w", err)
		}
		s.records[record.Ticker] = append(s.records[record.Ticker], record)
	}

	return nil
}

// persist writes the whole bank with pending as the would-be history for
// ticker. Caller holds the write lock, so two concurrent stores can never
// interleave into a corrupt file.
func (s *Store) persist(ticker string, pending []domain.MemoryRecord) error {
	file := fileSchema{Version: currentSchemaVersion}

	tickers := make([]string, 0, len(s.records)+1)
	seen := false
	for existing := range s.records {
		if existing == ticker {
			seen = true
		}
		tickers = append(tickers, existing)
	}
	if !seen {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, current := range tickers {
		history := s.records[current]
		if current == ticker {
			history = pending
		}
		for _, record := range history {
			file.Records = append(file.Records, toSchema(record))
		}
	}

	return s.writeFile(file)
}

func (s *Store) writeFile(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.path), memoryDirMode); err != nil {
		return fmt.Errorf("create memory bank directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode memory bank file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp memory bank file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp memory bank file: %w", err)
	}

	if err := tempFile.Chmod(memoryFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp memory bank file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp memory bank file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace memory bank file: %w", err)
	}

	cleanup = false
	return nil
}
