package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/kinetic/internal/scroll"
)

type ExportData struct {
	Meta   RunMetadata    `json:"meta"`
	Steps  int            `json:"steps"`
	Times  []float64      `json:"times"`
	Frames []scroll.State `json:"frames"`
}

func WriteJSON(w io.Writer, meta RunMetadata, times []float64, frames []scroll.State) error {
	data := ExportData{
		Meta:   meta,
		Steps:  len(times),
		Times:  times,
		Frames: frames,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, times, err := s.LoadFrames(meta.ID)
	if err != nil {
		return err
	}

	if path == "" || path == "-" {
		return WriteJSON(os.Stdout, *meta, times, frames)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, *meta, times, frames)
}
