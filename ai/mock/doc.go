// Package mock provides test doubles for the ai package interfaces.
//
// Each mock exposes function fields for behavior injection and call
// counters for assertions, and defaults to cheap deterministic behavior
// so tests never need a running model server.
package mock
