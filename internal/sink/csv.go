package sink

import (
	"encoding/csv"
	"io"
	"strconv"
	"sync"
)

// CSVPlot streams plot events as rows of event,graph,series,x,y.
type CSVPlot struct {
	mu     sync.Mutex
	w      *csv.Writer
	series []string
	graphs []string
	err    error
}

func NewCSVPlot(w io.Writer) *CSVPlot {
	p := &CSVPlot{w: csv.NewWriter(w)}
	p.write("event", "graph", "series", "x", "y")
	return p
}

func (p *CSVPlot) write(rec ...string) {
	if p.err != nil {
		return
	}
	p.err = p.w.Write(rec)
}

func (p *CSVPlot) Series(g Graph, label string) SeriesID {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.graphs = append(p.graphs, g.Title)
	p.series = append(p.series, label)
	return SeriesID(len(p.series) - 1)
}

func (p *CSVPlot) Add(id SeriesID, x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(id) < 0 || int(id) >= len(p.series) {
		return
	}
	p.write("add", p.graphs[id], p.series[id],
		strconv.FormatFloat(x, 'g', -1, 64),
		strconv.FormatFloat(y, 'g', -1, 64))
}

func (p *CSVPlot) Clear(id SeriesID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(id) < 0 || int(id) >= len(p.series) {
		return
	}
	p.write("clear", p.graphs[id], p.series[id], "", "")
}

// Flush writes buffered rows and reports the first error seen.
func (p *CSVPlot) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.w.Flush()
	if p.err != nil {
		return p.err
	}
	return p.w.Error()
}
