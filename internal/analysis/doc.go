// Package analysis works on recorded series after a run.
//
//   - [DominantFrequency]: peak of the power spectrum
//   - [Period]: mean time between upward crossings
//   - [Divergence]: growth rate of the separation of two runs
//   - [Sweep]: one run per parameter value, concurrently
//   - [PortraitASCII]: phase portrait of a series against its rate
//
// Series are the samples a sink.Recorder kept, with X as time.
package analysis
