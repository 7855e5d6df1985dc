// Package chart renders forecast series into PNG files.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/i474232898/weather-bot/internal/format"
)

var errEmptySeries = errors.New("series is empty")

// Renderer writes charts into a single directory. The caller owns every file
// it returns and removes it after use.
type Renderer struct {
	dir string
}

// NewRenderer creates dir if needed.
func NewRenderer(dir string) (*Renderer, error) {
	const op = "chart.NewRenderer"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Renderer{dir: dir}, nil
}

func (r *Renderer) Dir() string {
	return r.dir
}

// Render draws a line with markers through the series points and saves it
// as <uuid>.png. It returns the file path.
func (r *Renderer) Render(series format.Series, labels format.Labels) (string, error) {
	const op = "chart.Render"

	if len(series) == 0 {
		return "", fmt.Errorf("%s: %w", op, errEmptySeries)
	}

	p := plot.New()
	p.Title.Text = labels.Title
	p.X.Label.Text = labels.XLabel
	p.Y.Label.Text = labels.YLabel

	pts := make(plotter.XYs, len(series))
	names := make([]string, len(series))
	for i, pt := range series {
		pts[i].X = float64(i)
		pts[i].Y = pt.Value
		names[i] = pt.Label
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	line.Color = color.RGBA{B: 255, A: 255}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Color = color.Black

	p.Add(plotter.NewGrid(), line, scatter)
	p.NominalX(names...)

	path := filepath.Join(r.dir, uuid.NewString()+".png")
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path, nil
}

// Sweep removes PNG files older than maxAge, left behind when sending failed
// or the process stopped between render and cleanup.
func (r *Renderer) Sweep(maxAge time.Duration) (int, error) {
	const op = "chart.Sweep"

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(r.dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
