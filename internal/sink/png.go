package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/physlab/internal/vec"
)

// PNGPlot buffers series and saves one PNG per graph on Save.
type PNGPlot struct {
	Dir    string
	Width  vg.Length
	Height vg.Length

	rec *Recorder
}

func NewPNGPlot(dir string) *PNGPlot {
	return &PNGPlot{Dir: dir, Width: 8 * vg.Inch, Height: 6 * vg.Inch, rec: NewRecorder()}
}

func (p *PNGPlot) Series(g Graph, label string) SeriesID { return p.rec.Series(g, label) }
func (p *PNGPlot) Add(id SeriesID, x, y float64)         { p.rec.Add(id, x, y) }
func (p *PNGPlot) Clear(id SeriesID)                     { p.rec.Clear(id) }

// Save writes every graph with samples and returns the file paths.
func (p *PNGPlot) Save() ([]string, error) {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create directory: %w", err)
	}

	var files []string
	for _, g := range groupByGraph(p.rec.AllSeries()) {
		pl := plot.New()
		pl.Title.Text = g.graph.Title
		pl.X.Label.Text = g.graph.XLabel
		pl.Y.Label.Text = g.graph.YLabel
		pl.Add(plotter.NewGrid())

		drawn := 0
		for i, s := range g.series {
			if len(s.Points) == 0 {
				continue
			}
			line, err := plotter.NewLine(toXYs(s.Points))
			if err != nil {
				return files, fmt.Errorf("%s/%s: %w", g.graph.Title, s.Label, err)
			}
			line.LineStyle.Width = vg.Points(2)
			line.LineStyle.Color = plotutil.Color(i)
			pl.Add(line)
			if s.Label != "" {
				pl.Legend.Add(s.Label, line)
			}
			drawn++
		}
		if drawn == 0 {
			continue
		}

		name := filepath.Join(p.Dir, slug(g.graph.Title)+".png")
		if err := pl.Save(p.Width, p.Height, name); err != nil {
			return files, fmt.Errorf("cannot write png: %w", err)
		}
		files = append(files, name)
	}
	return files, nil
}

func toXYs(pts []Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	return xys
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	s = strings.Trim(nonWord.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if s == "" {
		return "graph"
	}
	return s
}

// FrameCapture is a render sink that can snapshot the current scene,
// projected on the XY plane, to <dir>/<prefix>-<tag>.png.
type FrameCapture struct {
	Dir    string
	Prefix string
	Size   vg.Length

	mu      sync.Mutex
	objects []Object
}

func NewFrameCapture(dir, prefix string) *FrameCapture {
	return &FrameCapture{Dir: dir, Prefix: prefix, Size: 4 * vg.Inch}
}

func (f *FrameCapture) Create(o Object) ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects = append(f.objects, o)
	return ObjectID(len(f.objects) - 1)
}

func (f *FrameCapture) Update(id ObjectID, pos, axis vec.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int(id) >= 0 && int(id) < len(f.objects) {
		f.objects[id].Pos = pos
		f.objects[id].Axis = axis
	}
}

// Path is the file a snapshot with the given tag is written to.
func (f *FrameCapture) Path(tag string) string {
	return filepath.Join(f.Dir, fmt.Sprintf("%s-%s.png", f.Prefix, tag))
}

func (f *FrameCapture) Snapshot(tag string) error {
	f.mu.Lock()
	var scenery, bodies plotter.XYs
	for _, o := range f.objects {
		pt := plotter.XY{X: o.Pos.X, Y: o.Pos.Y}
		if o.Kind == Sphere {
			bodies = append(bodies, pt)
		} else {
			scenery = append(scenery, pt)
		}
	}
	f.mu.Unlock()

	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	pl := plot.New()
	pl.HideAxes()
	if len(scenery) > 0 {
		s, err := plotter.NewScatter(scenery)
		if err != nil {
			return err
		}
		s.GlyphStyle.Radius = vg.Points(0.5)
		pl.Add(s)
	}
	if len(bodies) > 0 {
		s, err := plotter.NewScatter(bodies)
		if err != nil {
			return err
		}
		s.GlyphStyle.Radius = vg.Points(4)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = plotutil.Color(1)
		pl.Add(s)
	}

	if err := pl.Save(f.Size, f.Size, f.Path(tag)); err != nil {
		return fmt.Errorf("cannot write frame: %w", err)
	}
	return nil
}
