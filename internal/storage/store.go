// Package storage keeps finished runs on disk: a metadata.json with the
// result and a series.csv with every sampled series.
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

	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Mode        string             `json:"mode,omitempty"`
	Params      map[string]float64 `json:"params,omitempty"`
	Steps       int                `json:"steps"`
	Time        float64            `json:"time"`
	Reason      sim.Reason         `json:"reason"`
	EnergyDrift float64            `json:"energy_drift"`
	Snapshots   int                `json:"snapshots"`
	Elapsed     time.Duration      `json:"elapsed"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes res and the recorded series under the run's id.
func (s *Store) Save(res *sim.Result, mode string, params map[string]float64, series []sink.RecordedSeries) (string, error) {
	if res.RunID == "" {
		return "", errors.New("storage: result has no run id")
	}
	runDir := filepath.Join(s.baseDir, res.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          res.RunID,
		Scenario:    res.Scenario,
		Timestamp:   time.Now(),
		Dt:          res.Dt,
		Mode:        mode,
		Params:      params,
		Steps:       res.Steps,
		Time:        res.Time,
		Reason:      res.Reason,
		EnergyDrift: res.EnergyDrift,
		Snapshots:   res.Snapshots,
		Elapsed:     res.Elapsed,
		Metrics:     res.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	plot := sink.NewCSVPlot(csvFile)
	for _, sr := range series {
		id := plot.Series(sr.Graph, sr.Label)
		for _, p := range sr.Points {
			plot.Add(id, p.X, p.Y)
		}
	}
	if err := plot.Flush(); err != nil {
		return "", err
	}
	return res.RunID, nil
}

// List returns every readable run, newest first.
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries replays series.csv into a recorder.
func (s *Store) LoadSeries(runID string) ([]sink.RecordedSeries, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSeries(f)
}

// ReadSeries parses the event stream a sink.CSVPlot writes.
func ReadSeries(r io.Reader) ([]sink.RecordedSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5

	rec := sink.NewRecorder()
	ids := make(map[[2]string]sink.SeriesID)
	for line := 0; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 0 {
			continue
		}

		key := [2]string{row[1], row[2]}
		id, ok := ids[key]
		if !ok {
			id = rec.Series(sink.Graph{Title: row[1]}, row[2])
			ids[key] = id
		}
		switch row[0] {
		case "add":
			x, err := strconv.ParseFloat(row[3], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line+1, err)
			}
			y, err := strconv.ParseFloat(row[4], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line+1, err)
			}
			rec.Add(id, x, y)
		case "clear":
			rec.Clear(id)
		default:
			return nil, fmt.Errorf("line %d: unknown event %q", line+1, row[0])
		}
	}
	return rec.AllSeries(), nil
}

// Export writes the metadata and series of a run as one JSON document.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*RunMetadata
		Series []sink.RecordedSeries `json:"series"`
	}{meta, series})
}
