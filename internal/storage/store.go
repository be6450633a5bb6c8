package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/raytracer/internal/canvas"
	"github.com/san-kum/raytracer/internal/ppm"
	"github.com/san-kum/raytracer/internal/tuple"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
	imageFile      = "image.ppm"
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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Paint     string             `json:"paint"`
	Ticks     int                `json:"ticks"`
	Plotted   int                `json:"plotted"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the canvas as image.ppm alongside metadata.json and
// trajectory.csv in a new run directory, and returns the run id. The ID,
// Timestamp, Width and Height fields of meta are filled in.
func (s *Store) Save(meta RunMetadata, c *canvas.Canvas, trajectory []tuple.Tuple) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(meta.Scenario, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Width = c.Width
	meta.Height = c.Height

	if err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, imageFile), func(w io.Writer) error {
		return ppm.Write(w, c)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, trajectoryFile), func(w io.Writer) error {
		return writeTrajectory(w, trajectory)
	}); err != nil {
		return "", err
	}

	return runID, nil
}

// newRunDir creates a fresh directory named <scenario>_<unix-nanos>, moving
// to the next nanosecond if the name is taken.
func (s *Store) newRunDir(scenario string, now time.Time) (string, string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", "", err
	}
	prefix := runPrefix(scenario)
	ts := now.UnixNano()
	for {
		runID := fmt.Sprintf("%s_%d", prefix, ts)
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		ts++
	}
}

var separators = strings.NewReplacer("/", "_", "\\", "_")

// runPrefix keeps run ids a single path element inside the store.
func runPrefix(scenario string) string {
	name := separators.Replace(scenario)
	if name == "." || name == ".." {
		return "run"
	}
	return name
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func writeTrajectory(w io.Writer, trajectory []tuple.Tuple) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "x", "y", "z"}); err != nil {
		return err
	}
	for i, p := range trajectory {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
			strconv.FormatFloat(p.Z, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns the saved runs, oldest first. Directories without readable
// metadata are skipped.
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
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

// LoadTrajectory reads the positions saved with a run. Every position is a
// point.
func (s *Store) LoadTrajectory(runID string) ([]tuple.Tuple, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []tuple.Tuple{}, nil
	}

	points := make([]tuple.Tuple, 0, len(records)-1)
	for i, record := range records[1:] {
		var xyz [3]float64
		for j := range xyz {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", trajectoryFile, i+2, err)
			}
			xyz[j] = v
		}
		points = append(points, tuple.Point(xyz[0], xyz[1], xyz[2]))
	}

	return points, nil
}

// ImagePath is the location of a run's PPM file.
func (s *Store) ImagePath(runID string) string {
	return filepath.Join(s.baseDir, runID, imageFile)
}

// LoadImage decodes a run's PPM file.
func (s *Store) LoadImage(runID string) (*canvas.Canvas, error) {
	f, err := os.Open(s.ImagePath(runID))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ppm.Decode(f)
}
