// Package mithril is a symbolic model-composition and inference engine for
// computational graphs built from primitive operators. It infers, without
// executing any numeric computation, every port's tensor shape, value
// type, and staticness, and renders the result as a hierarchical summary.
//
// A graph is described as nested composites of submodels connected by
// name (package description), instantiated and unified by the inference
// driver (package infer) over a shape solver (package shape) and a type
// lattice (package typesys), then reduced to its static keys (package
// static) and rendered (package summary). Infer ties the whole pipeline
// together for the common case of "parse, infer, report".
package mithril
