// Package analytics contains the pure dashboard computations: period windows
// and category aggregation for spending, and allocation breakdowns for
// portfolio holdings.
//
// Every function takes its full input as arguments and returns freshly
// allocated results. Nothing in this package performs I/O or keeps state, so
// it is safe to call from concurrent request handlers.
package analytics
