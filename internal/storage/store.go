// Package storage persists simulation runs as directories: metadata as
// JSON, node and segment geometry as CSV, and the plant parameters as a
// reloadable YAML file.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/timokoch/CRootBox/internal/config"
	"github.com/timokoch/CRootBox/internal/rootbox"
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
	ID        string    `json:"id"`
	Plant     string    `json:"plant"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	SimTime   float64   `json:"sim_time"`
	Dt        float64   `json:"dt"`

	Roots    int     `json:"roots"`
	Nodes    int     `json:"nodes"`
	Segments int     `json:"segments"`
	Length   float64 `json:"total_length"`
}

// Save writes one run directory: metadata.json, plant.yaml, nodes.csv and
// segments.csv. Returns the run id.
func (s *Store) Save(cfg *config.Config, rs *rootbox.RootSystem) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	total := 0.0
	for _, l := range rs.Scalar(rootbox.ScalarLength) {
		total += l
	}
	meta := RunMetadata{
		ID:        runID,
		Plant:     cfg.Name,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		SimTime:   rs.SimTime(),
		Dt:        cfg.Plant.Dt,
		Roots:     rs.NumberOfRoots(false),
		Nodes:     rs.NumberOfNodes(),
		Segments:  rs.NumberOfSegments(),
		Length:    total,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, "plant.yaml"), cfg); err != nil {
		return "", err
	}
	if err := s.writeNodes(filepath.Join(runDir, "nodes.csv"), rs); err != nil {
		return "", err
	}
	if err := s.writeSegments(filepath.Join(runDir, "segments.csv"), rs); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeNodes(path string, rs *rootbox.RootSystem) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"node", "x", "y", "z", "time"}); err != nil {
		return err
	}
	nodes := rs.Nodes()
	times := rs.NETimes()
	for i, p := range nodes {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
			strconv.FormatFloat(p.Z, 'f', 6, 64),
			strconv.FormatFloat(times[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeSegments(path string, rs *rootbox.RootSystem) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"from", "to", "root", "type", "radius", "order"}); err != nil {
		return err
	}
	segments := rs.Segments()
	origins := rs.SegmentOrigins()
	for i, seg := range segments {
		r := origins[i]
		row := []string{
			strconv.Itoa(seg.From),
			strconv.Itoa(seg.To),
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Param.Type),
			strconv.FormatFloat(r.Param.A, 'f', 6, 64),
			strconv.Itoa(r.Order()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

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
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConfig reloads the plant parameters a run was produced with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, "plant.yaml"))
}

// LoadNodes reads back the node table: positions and creation times
// indexed by node id.
func (s *Store) LoadNodes(runID string) ([]rootbox.Vector3, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "nodes.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []rootbox.Vector3{}, []float64{}, nil
	}

	nodes := make([]rootbox.Vector3, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 5 {
			return nil, nil, fmt.Errorf("run %s: malformed node row %v", runID, record)
		}
		x, err1 := strconv.ParseFloat(record[1], 64)
		y, err2 := strconv.ParseFloat(record[2], 64)
		z, err3 := strconv.ParseFloat(record[3], 64)
		t, err4 := strconv.ParseFloat(record[4], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return nil, nil, fmt.Errorf("run %s: malformed node row %v", runID, record)
		}
		nodes = append(nodes, rootbox.Vector3{X: x, Y: y, Z: z})
		times = append(times, t)
	}
	return nodes, times, nil
}
