package core

import (
	"fmt"
	"slices"
	"strings"
)

// Args is what we scavenge from an xcodebuild command line.
type Args struct {
	Switches   map[string]string
	Positional []string
}

// ParseArgs splits argv into switches and positional tokens. A token starting
// with "-" becomes the pending switch; the next non-switch token is its value.
// A switch directly followed by another switch gets no value. A later value
// for the same switch replaces the earlier one. Nothing is validated, so any
// xcodebuild flag is tolerated.
func ParseArgs(argv []string) Args {
	a := Args{Switches: map[string]string{}, Positional: []string{}}
	key := ""
	for _, arg := range argv {
		switch {
		case strings.HasPrefix(arg, "-"):
			key = arg
		case key != "":
			a.Switches[key] = arg
			key = ""
		default:
			a.Positional = append(a.Positional, arg)
		}
	}
	return a
}

// Switch returns the value bound to name and whether it was present.
func (a Args) Switch(name string) (string, bool) {
	v, ok := a.Switches[name]
	return v, ok
}

// Require returns the value bound to name or an ErrMissingKey error.
func (a Args) Require(name string) (string, error) {
	v, ok := a.Switches[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, name)
	}
	return v, nil
}

// HasAction reports whether the positional tokens include action (e.g. "test").
func (a Args) HasAction(action string) bool {
	return slices.Contains(a.Positional, action)
}
