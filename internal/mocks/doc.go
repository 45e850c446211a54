// Package mocks provides hand-rolled test doubles for the store interfaces.
// Each mock exposes function fields for per-test behavior overrides and falls
// back to a simple in-memory implementation when no override is set.
package mocks
