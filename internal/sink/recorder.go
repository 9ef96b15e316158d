package sink

import (
	"sync"

	"github.com/san-kum/physlab/internal/vec"
)

type RecordedSeries struct {
	Graph  Graph
	Label  string
	Points []Point
	Clears int
}

// Recorder keeps everything pushed into it in memory. It is safe for
// concurrent use.
type Recorder struct {
	mu        sync.Mutex
	objects   []Object
	updates   int
	series    []RecordedSeries
	snapshots []string
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Create(o Object) ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects = append(r.objects, o)
	return ObjectID(len(r.objects) - 1)
}

func (r *Recorder) Update(id ObjectID, pos, axis vec.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(id) < 0 || int(id) >= len(r.objects) {
		return
	}
	r.objects[id].Pos = pos
	r.objects[id].Axis = axis
	r.updates++
}

func (r *Recorder) Series(g Graph, label string) SeriesID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.series = append(r.series, RecordedSeries{Graph: g, Label: label})
	return SeriesID(len(r.series) - 1)
}

func (r *Recorder) Add(id SeriesID, x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(id) < 0 || int(id) >= len(r.series) {
		return
	}
	r.series[id].Points = append(r.series[id].Points, Point{x, y})
}

func (r *Recorder) Clear(id SeriesID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(id) < 0 || int(id) >= len(r.series) {
		return
	}
	r.series[id].Points = nil
	r.series[id].Clears++
}

func (r *Recorder) Snapshot(tag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, tag)
	return nil
}

func (r *Recorder) Objects() []Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Object(nil), r.objects...)
}

func (r *Recorder) Updates() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}

// AllSeries returns a copy of every series in creation order.
func (r *Recorder) AllSeries() []RecordedSeries {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedSeries, len(r.series))
	for i, s := range r.series {
		s.Points = append([]Point(nil), s.Points...)
		out[i] = s
	}
	return out
}

// Find returns the first series with the given label.
func (r *Recorder) Find(label string) (RecordedSeries, bool) {
	for _, s := range r.AllSeries() {
		if s.Label == label {
			return s, true
		}
	}
	return RecordedSeries{}, false
}

func (r *Recorder) Snapshots() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.snapshots...)
}
