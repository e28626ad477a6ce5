package behavior

import "sort"

// Names returns every behavior name the translation table implements,
// sorted. Anything outside this set dispatches to the default projection.
func Names() []string {
	names := make([]string, 0, len(radialSpecs)+len(orbitSpecs)+3)
	for n := range radialSpecs {
		names = append(names, n)
	}
	for n := range orbitSpecs {
		names = append(names, n)
	}
	names = append(names, "ascending", "falling", "gravitationalAccretion")
	sort.Strings(names)
	return names
}

// Known reports whether the table implements a behavior name.
func Known(name string) bool {
	if _, ok := radialSpecs[name]; ok {
		return true
	}
	if _, ok := orbitSpecs[name]; ok {
		return true
	}
	switch name {
	case "ascending", "falling", "gravitationalAccretion":
		return true
	}
	return false
}
