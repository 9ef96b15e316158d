package sink

import (
	"context"

	"github.com/san-kum/physlab/internal/vec"
)

// Discard drops everything.
var Discard discard

type discard struct{}

func (discard) Create(Object) ObjectID              { return 0 }
func (discard) Update(ObjectID, vec.Vec3, vec.Vec3) {}
func (discard) Series(Graph, string) SeriesID       { return 0 }
func (discard) Add(SeriesID, float64, float64)      {}
func (discard) Clear(SeriesID)                      {}
func (discard) Snapshot(string) error               { return nil }

// NoPace runs as fast as possible but still honours cancellation.
var NoPace noPace

type noPace struct{}

func (noPace) Wait(ctx context.Context) error { return ctx.Err() }
