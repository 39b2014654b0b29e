package policy

import (
	"fmt"
	"sort"
)

// Available policies
var (
	ObstacleAvoider  Policy = ObstacleAvoiderPolicy{}
	LeftWallFollower Policy = LeftWallFollowerPolicy{}
	FloodFill        Policy = FloodFillPolicy{}
)

// Default is the policy used when none is named
var Default = LeftWallFollower

var registry = map[string]Policy{
	ObstacleAvoider.Name():  ObstacleAvoider,
	LeftWallFollower.Name(): LeftWallFollower,
	FloodFill.Name():        FloodFill,
}

// ByName returns the built-in policy with the given name.
// An empty name selects Default.
func ByName(name string) (Policy, error) {
	if name == "" {
		return Default, nil
	}
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names returns the names of all built-in policies in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
