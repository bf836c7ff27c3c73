// Package parallel runs independent jobs with bounded concurrency.
//
// It provides:
//   - WorkerPool: a generic pool that keeps results in submission order
//   - Map: an order-preserving, fail-fast parallel map built on WorkerPool
//
// Outline files are read and parsed through Map so that a report over many
// files keeps the configured file order.
package parallel
