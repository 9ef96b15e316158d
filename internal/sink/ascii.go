package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// ASCIIPlot buffers series and draws one terminal chart per graph.
type ASCIIPlot struct {
	Width  int
	Height int

	rec *Recorder
}

func NewASCIIPlot(width, height int) *ASCIIPlot {
	return &ASCIIPlot{Width: width, Height: height, rec: NewRecorder()}
}

func (a *ASCIIPlot) Series(g Graph, label string) SeriesID { return a.rec.Series(g, label) }
func (a *ASCIIPlot) Add(id SeriesID, x, y float64)         { a.rec.Add(id, x, y) }
func (a *ASCIIPlot) Clear(id SeriesID)                     { a.rec.Clear(id) }

// Render writes every graph that has samples to w.
func (a *ASCIIPlot) Render(w io.Writer) error {
	for _, g := range groupByGraph(a.rec.AllSeries()) {
		var data [][]float64
		var labels []string
		for _, s := range g.series {
			if len(s.Points) == 0 {
				continue
			}
			ys := make([]float64, len(s.Points))
			for i, p := range s.Points {
				ys[i] = p.Y
			}
			data = append(data, ys)
			labels = append(labels, s.Label)
		}
		if len(data) == 0 {
			continue
		}

		chart := asciigraph.PlotMany(data,
			asciigraph.Height(a.Height),
			asciigraph.Width(a.Width),
			asciigraph.Caption(fmt.Sprintf("%s: %s vs %s", g.graph.Title, g.graph.YLabel, g.graph.XLabel)),
		)
		if _, err := fmt.Fprintf(w, "%s\n  %s\n\n", chart, strings.Join(labels, ", ")); err != nil {
			return err
		}
	}
	return nil
}

type graphSeries struct {
	graph  Graph
	series []RecordedSeries
}

// groupByGraph keeps the order in which graphs first appeared.
func groupByGraph(all []RecordedSeries) []graphSeries {
	var out []graphSeries
	index := make(map[Graph]int)
	for _, s := range all {
		i, ok := index[s.Graph]
		if !ok {
			i = len(out)
			index[s.Graph] = i
			out = append(out, graphSeries{graph: s.Graph})
		}
		out[i].series = append(out[i].series, s)
	}
	return out
}
