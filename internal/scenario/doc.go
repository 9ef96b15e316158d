// Package scenario holds the demonstration setups: each one is a sim.Scenario
// with a few tunable parameters, built fresh on every run.
package scenario
