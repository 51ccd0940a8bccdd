package graph

import "strings"

// Path is a composite path such as "Model.m3.m2", used to qualify
// diagnostics with exactly where in the submodel tree they occurred.
type Path []string

// Child returns the path extended by one submodel name.
func (p Path) Child(name string) Path {
	return append(append(Path{}, p...), name)
}

func (p Path) String() string {
	return strings.Join(p, ".")
}
