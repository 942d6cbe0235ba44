package ports

import "go.trai.ch/pax/internal/core/domain"

// Hasher defines the interface for computing hashes.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeInputHash computes the input hash for a given task.
	ComputeInputHash(task *domain.Task, env map[string]string, rootDir string) (string, error)
	// ComputeOutputHash computes a combined hash of the task outputs.
	ComputeOutputHash(outputs []string, rootDir string) (string, error)
}
