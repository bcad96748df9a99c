// Package storage persists finished runs under a base directory, one
// directory per run holding metadata.json and telemetry.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/kinelab/internal/telemetry"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile  = "metadata.json"
	telemetryFile = "telemetry.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
	create  func(path string) (io.WriteCloser, error)
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now, create: createFile}
}

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Motion    telemetry.Motion   `json:"motion"`
	Variant   string             `json:"variant"`
	Timestamp time.Time          `json:"timestamp"`
	Params    map[string]float64 `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
	Samples   int                `json:"samples"`
	Status    string             `json:"status"`
}

// Run is everything Save needs to persist one simulation.
type Run struct {
	Motion    telemetry.Motion
	Variant   string
	Params    map[string]float64
	Metrics   map[string]float64
	Snapshots []telemetry.Snapshot
}

var header = []string{
	"elapsed", "position", "displacement", "velocity", "time_remaining",
	"final_position", "progress", "screen", "running", "final", "status",
}

func (s *Store) Save(run Run) (string, error) {
	now := s.now()
	runID, runDir, err := s.allocate(run.Motion, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Motion:    run.Motion,
		Variant:   run.Variant,
		Timestamp: now,
		Params:    run.Params,
		Metrics:   run.Metrics,
		Samples:   len(run.Snapshots),
	}
	if n := len(run.Snapshots); n > 0 {
		meta.Status = run.Snapshots[n-1].Status
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if err := s.writeCSVFile(filepath.Join(runDir, telemetryFile), run.Snapshots); err != nil {
		return "", fmt.Errorf("storage: write telemetry of %s: %w", runID, err)
	}
	return runID, nil
}

// writeCSVFile writes snaps to path. The close error counts: a run is only
// saved once its telemetry reached the file.
func (s *Store) writeCSVFile(path string, snaps []telemetry.Snapshot) error {
	f, err := s.create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, snaps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// allocate creates a fresh run directory, suffixing the id when two runs
// land in the same second.
func (s *Store) allocate(motion telemetry.Motion, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", motion, now.Unix())
	for i := 0; ; i++ {
		runID := base
		if i > 0 {
			runID = fmt.Sprintf("%s-%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCSV writes snaps with a header row.
func WriteCSV(w io.Writer, snaps []telemetry.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range snaps {
		row := []string{
			formatFloat(s.Elapsed),
			formatFloat(s.Position),
			formatFloat(s.Displacement),
			formatFloat(s.Velocity),
			formatFloat(s.TimeRemaining),
			formatFloat(s.FinalPosition),
			formatFloat(s.Progress),
			formatFloat(s.Screen),
			strconv.FormatBool(s.Running),
			strconv.FormatBool(s.Final),
			s.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// TelemetryPath is where the CSV of runID lives.
func (s *Store) TelemetryPath(runID string) string {
	return filepath.Join(s.baseDir, runID, telemetryFile)
}

func (s *Store) LoadTelemetry(runID string) ([]telemetry.Snapshot, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(s.TelemetryPath(runID))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []telemetry.Snapshot{}, nil
	}

	snaps := make([]telemetry.Snapshot, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(header) {
			continue
		}
		var nums [8]float64
		ok := true
		for i := range nums {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				ok = false
				break
			}
			nums[i] = v
		}
		if !ok {
			continue
		}
		running, _ := strconv.ParseBool(record[8])
		final, _ := strconv.ParseBool(record[9])

		snaps = append(snaps, telemetry.Snapshot{
			Motion:        meta.Motion,
			Elapsed:       nums[0],
			Position:      nums[1],
			Displacement:  nums[2],
			Velocity:      nums[3],
			TimeRemaining: nums[4],
			FinalPosition: nums[5],
			Progress:      nums[6],
			Screen:        nums[7],
			Running:       running,
			Final:         final,
			Status:        record[10],
		})
	}
	return snaps, nil
}
