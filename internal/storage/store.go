package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"barswing/internal/game"
	"barswing/internal/sim"
)

// Store persists recorded runs, one directory per run: metadata.json with
// the run parameters and states.csv with the frame-by-frame trajectory.
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
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Seed       int64     `json:"seed"`
	Dt         float64   `json:"dt"`
	Duration   float64   `json:"duration"`
	Preset     string    `json:"preset,omitempty"`
	FinalScore int       `json:"final_score"`
	FinalMode  string    `json:"final_mode"`
}

var csvHeader = []string{"time", "mode", "x", "y", "z", "angle", "omega", "vx", "vy", "vz", "score"}

func (s *Store) Save(seed int64, dt, duration float64, preset string, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		Preset:    preset,
	}
	if n := len(result.Snapshots); n > 0 {
		meta.FinalScore = result.Snapshots[n-1].Score
		meta.FinalMode = result.Snapshots[n-1].Mode.String()
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, snap := range result.Snapshots {
		if err := w.Write(snapshotRow(snap)); err != nil {
			return "", err
		}
	}

	return runID, w.Error()
}

func snapshotRow(snap game.Snapshot) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		f(snap.Time),
		snap.Mode.String(),
		f(snap.Pos.X()), f(snap.Pos.Y()), f(snap.Pos.Z()),
		f(snap.Angle), f(snap.AngVel),
		f(snap.Vel.X()), f(snap.Vel.Y()), f(snap.Vel.Z()),
		strconv.Itoa(snap.Score),
	}
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// Frame is one decoded row of a stored trajectory.
type Frame struct {
	Time    float64
	Mode    string
	X, Y, Z float64
	Angle   float64
	Omega   float64
	Score   int
}

func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("run %s: empty trajectory", runID)
	}

	frames := make([]Frame, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("run %s: malformed row with %d columns", runID, len(row))
		}
		var fr Frame
		fr.Time, _ = strconv.ParseFloat(row[0], 64)
		fr.Mode = row[1]
		fr.X, _ = strconv.ParseFloat(row[2], 64)
		fr.Y, _ = strconv.ParseFloat(row[3], 64)
		fr.Z, _ = strconv.ParseFloat(row[4], 64)
		fr.Angle, _ = strconv.ParseFloat(row[5], 64)
		fr.Omega, _ = strconv.ParseFloat(row[6], 64)
		fr.Score, _ = strconv.Atoi(row[10])
		frames = append(frames, fr)
	}
	return frames, nil
}
