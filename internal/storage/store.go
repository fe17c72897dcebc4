package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"

	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/scroll"
)

const (
	metaFile   = "metadata.json"
	framesFile = "frames.csv"
	xzFile     = "frames.csv.xz"
)

var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrAmbiguousRun = errors.New("storage: run id prefix is ambiguous")
)

type Store struct {
	baseDir  string
	compress bool
	log      *slog.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, log: slog.Default()}
}

// SetCompression makes Save write frames as xz.
func (s *Store) SetCompression(on bool)   { s.compress = on }
func (s *Store) SetLogger(l *slog.Logger) { s.log = l }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was produced.
type RunInfo struct {
	Name     string        `json:"name"`
	Mode     string        `json:"mode"`
	Stepper  string        `json:"stepper"`
	Gesture  string        `json:"gesture"`
	Min      float64       `json:"min"`
	Max      float64       `json:"max"`
	Params   scroll.Params `json:"params"`
	Dt       float64       `json:"dt"`
	Duration float64       `json:"duration"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Frames     int                `json:"frames"`
	Ticks      int                `json:"ticks"`
	SettledAt  float64            `json:"settled_at"`
	Compressed bool               `json:"compressed"`
	Metrics    map[string]float64 `json:"metrics"`
	RunInfo
}

func (s *Store) Save(info RunInfo, result *frame.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", info.Name, uuid.New().String())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Frames:     len(result.Frames),
		Ticks:      result.Ticks,
		SettledAt:  result.SettledAt,
		Compressed: s.compress,
		Metrics:    result.Metrics,
		RunInfo:    info,
	}

	if err := writeMeta(filepath.Join(runDir, metaFile), meta); err != nil {
		return "", err
	}
	if err := s.writeFrames(runDir, result); err != nil {
		return "", err
	}

	s.log.Debug("run saved", "id", runID, "frames", meta.Frames, "compressed", meta.Compressed)
	return runID, nil
}

func writeMeta(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeFrames(runDir string, result *frame.Result) error {
	name := framesFile
	if s.compress {
		name = xzFile
	}
	f, err := os.Create(filepath.Join(runDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	if !s.compress {
		return WriteCSV(f, result.Times, result.Frames)
	}

	xw, err := xz.NewWriter(f)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if err := WriteCSV(xw, result.Times, result.Frames); err != nil {
		xw.Close()
		return err
	}
	return xw.Close()
}

var csvHeader = []string{"time", "value", "velocity", "scroll", "overscroll", "displacement", "manual", "phase"}

// WriteCSV writes one row per frame.
func WriteCSV(w io.Writer, times []float64, frames []scroll.State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for i, f := range frames {
		row := []string{
			ff(times[i]),
			ff(f.Value),
			ff(f.Velocity),
			ff(f.Scroll),
			ff(f.Overscroll),
			ff(f.Displacement),
			strconv.FormatBool(f.Manual),
			f.Phase.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses frames written by WriteCSV.
func ReadCSV(r io.Reader) ([]scroll.State, []float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []scroll.State{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	frames := make([]scroll.State, 0, len(records)-1)
	for i, rec := range records[1:] {
		nums := make([]float64, 6)
		for j := range nums {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %s: %w", i+1, csvHeader[j], err)
			}
			nums[j] = v
		}
		manual, err := strconv.ParseBool(rec[6])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d column manual: %w", i+1, err)
		}
		times = append(times, nums[0])
		frames = append(frames, scroll.State{
			Value:        nums[1],
			Velocity:     nums[2],
			Scroll:       nums[3],
			Overscroll:   nums[4],
			Displacement: nums[5],
			Manual:       manual,
			Phase:        parsePhase(rec[7]),
		})
	}
	return frames, times, nil
}

func parsePhase(s string) scroll.Phase {
	switch s {
	case scroll.Manual.String():
		return scroll.Manual
	case scroll.FreeRunning.String():
		return scroll.FreeRunning
	default:
		return scroll.Idle
	}
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
		meta, err := s.readMeta(entry.Name())
		if err != nil {
			s.log.Debug("skipping run directory", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

// Resolve expands a unique prefix of a run id.
func (s *Store) Resolve(prefix string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.baseDir, prefix, metaFile)); err == nil {
		return prefix, nil
	}
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	match := ""
	for _, r := range runs {
		if !strings.HasPrefix(r.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s", ErrAmbiguousRun, prefix)
		}
		match = r.ID
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	}
	return match, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	id, err := s.Resolve(runID)
	if err != nil {
		return nil, err
	}
	return s.readMeta(id)
}

func (s *Store) readMeta(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads the recorded frames, plain or xz.
func (s *Store) LoadFrames(runID string) ([]scroll.State, []float64, error) {
	id, err := s.Resolve(runID)
	if err != nil {
		return nil, nil, err
	}
	runDir := filepath.Join(s.baseDir, id)

	if f, err := os.Open(filepath.Join(runDir, framesFile)); err == nil {
		defer f.Close()
		return ReadCSV(f)
	}

	f, err := os.Open(filepath.Join(runDir, xzFile))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s has no frames", ErrRunNotFound, id)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return ReadCSV(xr)
}
