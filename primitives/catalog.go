package primitives

import (
	"github.com/emre-synnada/mithril/core"
	"github.com/emre-synnada/mithril/graph"
	"github.com/emre-synnada/mithril/shape"
	"github.com/emre-synnada/mithril/typesys"
)

func init() {
	register(graph.OpRelu, unaryElementwise)
	register(graph.OpSigmoid, unaryElementwise)
	register(graph.OpTanh, unaryElementwise)
	register(graph.OpLeakyRelu, unaryElementwise)
	register(graph.OpBuffer, unaryElementwise)

	register(graph.OpAdd, binaryElementwise)
	register(graph.OpMultiply, binaryElementwise)
	register(graph.OpDivide, binaryElementwise)
	register(graph.OpPower, binaryElementwise)

	register(graph.OpLinear, linearRule)
	register(graph.OpRBFKernel, rbfKernelRule)
	register(graph.OpMatrixMultiply, matMulRule)

	register(graph.OpSum, reduceRule)
	register(graph.OpMean, reduceRule)
	register(graph.OpMax, reduceRule)
	register(graph.OpMin, reduceRule)

	register(graph.OpConcat, concatRule)
	register(graph.OpFlatten, flattenRule)
	register(graph.OpToTensor, toTensorRule)
	register(graph.OpShape, shapeOfRule)
	register(graph.OpSize, sizeRule)

	register(graph.OpSquaredError, pairwiseLossRule)
	register(graph.OpCrossEntropy, pairwiseLossRule)
	register(graph.OpL1, normRule)
	register(graph.OpL2, normRule)
}

func register(op graph.OpKind, build BuildFunc) {
	Catalog[op] = Rule{Op: op, Build: build}
}

// unaryElementwise covers Relu, Sigmoid, Tanh, LeakyRelu and Buffer: a
// single tensor in, the identical shape back out. Sharing one Term value
// between the two templates is what makes "output shape == input shape" a
// build-time fact rather than something the constraint phase must enforce.
func unaryElementwise(alloc *core.DimAllocator) []PortTemplate {
	t := freshVariadic(alloc)
	ty := typesys.NewTensor(0)
	return []PortTemplate{
		{Name: "input", Role: graph.RoleInput, Shape: t, Type: ty},
		{Name: "output", Role: graph.RoleOutput, Shape: t, Type: ty},
	}
}

// binaryElementwise covers Add, Multiply, Divide, Power. All three ports
// share the same variadic term: the engine declares plain shape equality
// and does no broadcasting arithmetic of its own (spec §1 non-goals).
func binaryElementwise(alloc *core.DimAllocator) []PortTemplate {
	t := freshVariadic(alloc)
	ty := typesys.NewTensor(0)
	return []PortTemplate{
		{Name: "left", Role: graph.RoleInput, Shape: t, Type: ty},
		{Name: "right", Role: graph.RoleInput, Shape: t, Type: ty},
		{Name: "output", Role: graph.RoleOutput, Shape: t, Type: ty},
	}
}

// linearRule: Linear(weight: [O,I], input: [B,I], bias: [O]) -> output: [B,O].
func linearRule(alloc *core.DimAllocator) []PortTemplate {
	o, i, b := alloc.Fresh(), alloc.Fresh(), alloc.Fresh()
	ty := typesys.NewTensor(typesys.Float)
	return []PortTemplate{
		{Name: "weight", Role: graph.RoleInput, Shape: fixedDims(o, i), Type: ty},
		{Name: "input", Role: graph.RoleInput, Shape: fixedDims(b, i), Type: ty},
		{Name: "bias", Role: graph.RoleInput, Shape: fixedDims(o), Type: ty},
		{Name: "output", Role: graph.RoleOutput, Shape: fixedDims(b, o), Type: ty},
	}
}

// rbfKernelRule: RBFKernel(input1: [N,D], input2: [M,D], sigma: [1],
// l_scale: [1]) -> output: [N,M].
func rbfKernelRule(alloc *core.DimAllocator) []PortTemplate {
	n, m, d := alloc.Fresh(), alloc.Fresh(), alloc.Fresh()
	ty := typesys.NewTensor(typesys.Float)
	one := shape.FixedTerm(shape.ConcreteAtom(1))
	return []PortTemplate{
		{Name: "input1", Role: graph.RoleInput, Shape: fixedDims(n, d), Type: ty},
		{Name: "input2", Role: graph.RoleInput, Shape: fixedDims(m, d), Type: ty},
		{Name: "sigma", Role: graph.RoleInput, Shape: one, Type: ty},
		{Name: "l_scale", Role: graph.RoleInput, Shape: one, Type: ty},
		{Name: "output", Role: graph.RoleOutput, Shape: fixedDims(n, m), Type: ty},
	}
}

// matMulRule: MatrixMultiply(left: [M,K], right: [K,N]) -> output: [M,N].
func matMulRule(alloc *core.DimAllocator) []PortTemplate {
	m, k, n := alloc.Fresh(), alloc.Fresh(), alloc.Fresh()
	ty := typesys.NewTensor(typesys.Float)
	return []PortTemplate{
		{Name: "left", Role: graph.RoleInput, Shape: fixedDims(m, k), Type: ty},
		{Name: "right", Role: graph.RoleInput, Shape: fixedDims(k, n), Type: ty},
		{Name: "output", Role: graph.RoleOutput, Shape: fixedDims(m, n), Type: ty},
	}
}

// reduceRule covers Sum, Mean, Max, Min: a tensor of unknown rank collapses
// to a scalar. No dim-arithmetic is declared over the reduced axes, per the
// engine's non-goals.
func reduceRule(alloc *core.DimAllocator) []PortTemplate {
	ty := typesys.NewTensor(0)
	return []PortTemplate{
		{Name: "input", Role: graph.RoleInput, Shape: freshVariadic(alloc), Type: ty},
		{Name: "output", Role: graph.RoleOutput, Shape: shape.ScalarTerm(), Type: ty},
	}
}

// concatRule: two same-shaped tensors in, one out; this engine does not
// model which axis grows.
func concatRule(alloc *core.DimAllocator) []PortTemplate {
	t := freshVariadic(alloc)
	ty := typesys.NewTensor(0)
	return []PortTemplate{
		{Name: "a", Role: graph.RoleInput, Shape: t, Type: ty},
		{Name: "b", Role: graph.RoleInput, Shape: t, Type: ty},
		{Name: "output", Role: graph.RoleOutput, Shape: t, Type: ty},
	}
}

// flattenRule: a tensor of unknown rank collapses to a single fresh
// length dimension.
func flattenRule(alloc *core.DimAllocator) []PortTemplate {
	ty := typesys.NewTensor(0)
	return []PortTemplate{
		{Name: "input", Role: graph.RoleInput, Shape: freshVariadic(alloc), Type: ty},
		{Name: "output", Role: graph.RoleOutput, Shape: fixedDims(alloc.Fresh()), Type: ty},
	}
}

// toTensorRule: a scalar literal promoted to a single-element tensor.
func toTensorRule(alloc *core.DimAllocator) []PortTemplate {
	return []PortTemplate{
		{Name: "input", Role: graph.RoleInput, Shape: shape.ScalarTerm(), Type: typesys.Union(typesys.ScalarBool, typesys.ScalarInt, typesys.ScalarFloat)},
		{Name: "output", Role: graph.RoleOutput, Shape: shape.FixedTerm(shape.ConcreteAtom(1)), Type: typesys.NewTensor(0)},
	}
}

// shapeOfRule: reports a tensor's shape as a rank-1 int tensor of unknown
// length (its own rank may itself be symbolic).
func shapeOfRule(alloc *core.DimAllocator) []PortTemplate {
	return []PortTemplate{
		{Name: "input", Role: graph.RoleInput, Shape: freshVariadic(alloc), Type: typesys.NewTensor(0)},
		{Name: "output", Role: graph.RoleOutput, Shape: fixedDims(alloc.Fresh()), Type: typesys.NewTensor(typesys.Int)},
	}
}

// sizeRule: reports a tensor's total element count as a scalar int.
func sizeRule(alloc *core.DimAllocator) []PortTemplate {
	return []PortTemplate{
		{Name: "input", Role: graph.RoleInput, Shape: freshVariadic(alloc), Type: typesys.NewTensor(0)},
		{Name: "output", Role: graph.RoleOutput, Shape: shape.ScalarTerm(), Type: typesys.ScalarInt},
	}
}

// pairwiseLossRule covers SquaredError and CrossEntropy: two same-shaped
// tensors reduce to a scalar loss.
func pairwiseLossRule(alloc *core.DimAllocator) []PortTemplate {
	t := freshVariadic(alloc)
	ty := typesys.NewTensor(typesys.Float)
	return []PortTemplate{
		{Name: "prediction", Role: graph.RoleInput, Shape: t, Type: ty},
		{Name: "target", Role: graph.RoleInput, Shape: t, Type: ty},
		{Name: "output", Role: graph.RoleOutput, Shape: shape.ScalarTerm(), Type: typesys.ScalarFloat},
	}
}

// normRule covers L1 and L2: a single tensor reduces to a scalar norm.
func normRule(alloc *core.DimAllocator) []PortTemplate {
	return []PortTemplate{
		{Name: "input", Role: graph.RoleInput, Shape: freshVariadic(alloc), Type: typesys.NewTensor(typesys.Float)},
		{Name: "output", Role: graph.RoleOutput, Shape: shape.ScalarTerm(), Type: typesys.ScalarFloat},
	}
}
