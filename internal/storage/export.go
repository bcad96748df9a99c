package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/kinelab/internal/telemetry"
)

type ExportData struct {
	RunMetadata
	Elapsed   []float64 `json:"elapsed"`
	Positions []float64 `json:"positions"`
	Velocity  []float64 `json:"velocity"`
	Progress  []float64 `json:"progress"`
}

func NewExportData(meta RunMetadata, snaps []telemetry.Snapshot) ExportData {
	data := ExportData{
		RunMetadata: meta,
		Elapsed:     make([]float64, len(snaps)),
		Positions:   make([]float64, len(snaps)),
		Velocity:    make([]float64, len(snaps)),
		Progress:    make([]float64, len(snaps)),
	}
	for i, s := range snaps {
		data.Elapsed[i] = s.Elapsed
		data.Positions[i] = s.Position
		data.Velocity[i] = s.Velocity
		data.Progress[i] = s.Progress
	}
	return data
}

// ExportJSON writes runID as a single JSON document to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	snaps, err := s.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(*meta, snaps))
}

// ExportCSV copies the telemetry of runID to path.
func (s *Store) ExportCSV(path, runID string) error {
	snaps, err := s.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	return s.writeCSVFile(path, snaps)
}
