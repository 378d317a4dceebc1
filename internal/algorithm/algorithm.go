// Package algorithm implements the automated surface pickers and the
// registry the UI and CLI use to enumerate them by display name.
package algorithm

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"sonar-pick/internal/survey"
)

var (
	// ErrUnknownAlgorithm means no algorithm is registered under a name.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrUnknownFrequency means the requested frequency label has no
	// raster on the survey line.
	ErrUnknownFrequency = errors.New("unknown frequency")

	// ErrUnknownLine means a referenced depth line does not exist.
	ErrUnknownLine = errors.New("unknown depth line")

	// ErrBadParam means an algorithm parameter is missing or out of range.
	ErrBadParam = errors.New("bad algorithm parameter")

	// ErrAlgorithmExists means a Register call reused a name.
	ErrAlgorithmExists = errors.New("algorithm already registered")
)

// Algorithm is one configured surface picker. ProcessLine is a pure
// function of the line and the parameter fields; a failed run leaves no
// partial state and is re-run with adjusted parameters, never retried.
type Algorithm interface {
	survey.Picker

	// Instructions returns operator-facing usage text.
	Instructions() string

	// ArgList returns the user-settable parameter names in display order.
	ArgList() []string

	// ValidateParams checks parameter presence and ranges before a run.
	ValidateParams() error
}

// Factory builds a fresh algorithm instance with default parameters.
type Factory func() Algorithm

var registry = struct {
	mu sync.RWMutex
	m  map[string]Factory
}{
	m: map[string]Factory{
		CurrentSurfaceName: func() Algorithm { return NewCurrentSurfaceThreshold() },
		PreImpoundmentName: func() Algorithm { return NewPreImpoundmentThreshold() },
	},
}

// Register adds an algorithm under its display name. The built-in pickers
// are pre-registered; adding a third algorithm is one Register call.
func Register(name string, f Factory) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.m[name]; ok {
		return fmt.Errorf("%w: %q", ErrAlgorithmExists, name)
	}
	registry.m[name] = f
	return nil
}

// New builds a default-configured instance of the named algorithm.
func New(name string) (Algorithm, error) {
	registry.mu.RLock()
	f, ok := registry.m[name]
	registry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return f(), nil
}

// Names lists the registered algorithm display names, sorted.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.m))
	for name := range registry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
