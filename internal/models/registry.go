package models

import (
	"fmt"
	"sort"

	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
)

var registry = map[string]func() kinetics.Definition{
	"oxidative_core":   OxidativeCore,
	"lead_endothelial": Endothelial,
	"lead_macrophage":  Macrophage,
}

// Get returns the named builtin model definition.
func Get(name string) (kinetics.Definition, error) {
	fn, ok := registry[name]
	if !ok {
		return kinetics.Definition{}, fmt.Errorf("unknown model: %s (available: %v)", name, List())
	}
	return fn(), nil
}

// List returns the builtin model names in sorted order.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
