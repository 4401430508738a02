package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"barswing/internal/storage"
)

// PlotRun renders the angle, height and score series of a stored run.
func PlotRun(frames []storage.Frame) string {
	angles := make([]float64, len(frames))
	heights := make([]float64, len(frames))
	scores := make([]float64, len(frames))
	for i, fr := range frames {
		angles[i] = fr.Angle
		heights[i] = fr.Y
		scores[i] = float64(fr.Score)
	}

	var b strings.Builder
	series := []struct {
		data    []float64
		caption string
	}{
		{angles, "swing angle (rad)"},
		{heights, "height"},
		{scores, "score"},
	}
	for i, s := range series {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(asciigraph.Plot(s.data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
	}
	fmt.Fprintf(&b, "\n\nframes: %d", len(frames))
	return b.String()
}
