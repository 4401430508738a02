package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// ExportCSV writes a stored trajectory back out as CSV.
func (s *Store) ExportCSV(runID string, out io.Writer) error {
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"time", "mode", "x", "y", "angle", "omega", "score"}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, fr := range frames {
		row := []string{f(fr.Time), fr.Mode, f(fr.X), f(fr.Y), f(fr.Angle), f(fr.Omega), strconv.Itoa(fr.Score)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

type exportedRun struct {
	Meta   RunMetadata `json:"meta"`
	Frames []Frame     `json:"frames"`
}

// ExportJSON writes the metadata and trajectory as a single JSON document.
func (s *Store) ExportJSON(runID string, out io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(exportedRun{Meta: *meta, Frames: frames})
}
