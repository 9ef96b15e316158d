package sink

import (
	"sync"

	"github.com/san-kum/physlab/internal/vec"
)

type teePlot struct {
	mu    sync.Mutex
	plots []Plot
	ids   [][]SeriesID
}

// Plots sends every event to each of ps.
func Plots(ps ...Plot) Plot {
	if len(ps) == 1 {
		return ps[0]
	}
	return &teePlot{plots: ps}
}

func (t *teePlot) Series(g Graph, label string) SeriesID {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]SeriesID, len(t.plots))
	for i, p := range t.plots {
		ids[i] = p.Series(g, label)
	}
	t.ids = append(t.ids, ids)
	return SeriesID(len(t.ids) - 1)
}

func (t *teePlot) lookup(id SeriesID) []SeriesID {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(id) < 0 || int(id) >= len(t.ids) {
		return nil
	}
	return t.ids[id]
}

func (t *teePlot) Add(id SeriesID, x, y float64) {
	for i, sid := range t.lookup(id) {
		t.plots[i].Add(sid, x, y)
	}
}

func (t *teePlot) Clear(id SeriesID) {
	for i, sid := range t.lookup(id) {
		t.plots[i].Clear(sid)
	}
}

type teeRender struct {
	mu      sync.Mutex
	renders []Render
	ids     [][]ObjectID
}

// Renders sends every object to each of rs.
func Renders(rs ...Render) Render {
	if len(rs) == 1 {
		return rs[0]
	}
	return &teeRender{renders: rs}
}

func (t *teeRender) Create(o Object) ObjectID {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]ObjectID, len(t.renders))
	for i, r := range t.renders {
		ids[i] = r.Create(o)
	}
	t.ids = append(t.ids, ids)
	return ObjectID(len(t.ids) - 1)
}

func (t *teeRender) Update(id ObjectID, pos, axis vec.Vec3) {
	t.mu.Lock()
	var ids []ObjectID
	if int(id) >= 0 && int(id) < len(t.ids) {
		ids = t.ids[id]
	}
	t.mu.Unlock()
	for i, oid := range ids {
		t.renders[i].Update(oid, pos, axis)
	}
}
