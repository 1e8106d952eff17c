package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/san-kum/sortviz/internal/trace"
)

// ErrLockTimeout is returned when the store lock cannot be acquired in time.
var ErrLockTimeout = errors.New("storage: timeout acquiring store lock")

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
	lockFile     = ".lock"
)

type Store struct {
	baseDir     string
	lockTimeout time.Duration
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, lockTimeout: 5 * time.Second}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type TraceMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Pattern   string             `json:"pattern"`
	Size      int                `json:"size"`
	Seed      int64              `json:"seed"`
	Timestamp time.Time          `json:"timestamp"`
	Steps     int                `json:"steps"`
	Input     []int              `json:"input"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a trace under a new ID. Writers are serialized with a file
// lock in the store directory.
func (s *Store) Save(ctx context.Context, alg trace.Algorithm, pattern string, seed int64, input []int, seq trace.Sequence, metrics map[string]float64) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	lock := flock.New(filepath.Join(s.baseDir, lockFile))
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil {
		return "", fmt.Errorf("failed to acquire store lock: %w", err)
	}
	if !locked {
		return "", ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	runID := fmt.Sprintf("%s_%s", alg, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := TraceMetadata{
		ID:        runID,
		Algorithm: string(alg),
		Pattern:   pattern,
		Size:      len(input),
		Seed:      seed,
		Timestamp: time.Now(),
		Steps:     seq.Len(),
		Input:     input,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, stepsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteStepsCSV(csvFile, seq); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns saved traces, newest first.
func (s *Store) List() ([]TraceMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TraceMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]TraceMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*TraceMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta TraceMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSteps reads back the recorded step sequence of a trace.
func (s *Store) LoadSteps(runID string) (trace.Sequence, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadStepsCSV(file)
}

// Remove deletes a saved trace.
func (s *Store) Remove(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
