// Package summary renders the hierarchical tabular textual report (spec
// §4.8): one table per composite level, emitted pre-order, with column
// widths computed once per table and shape atoms right-aligned inside
// brackets. BuildSnapshot exposes the same per-port data as a structured
// tree, so description.Result can report it alongside the rendered text
// without re-walking the graph.
package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emre-synnada/mithril/core"
	"github.com/emre-synnada/mithril/graph"
	"github.com/emre-synnada/mithril/shape"
	"github.com/emre-synnada/mithril/typesys"
)

const colSep = "  "

// PortRow is one port's resolved inference outcome, independent of any
// text-table formatting.
type PortRow struct {
	Name       string
	Role       string
	Shape      string
	Type       string
	Connection string
	Static     bool
}

// VertexRow is one submodel's resolved outcome: its own label, its ports,
// and — when it is a composite — the nested Snapshot for its internals.
type VertexRow struct {
	Name  string
	Label string
	Ports []PortRow
	Sub   *Snapshot
}

// Snapshot is one composite level's resolved outcome, in submodel
// declaration order.
type Snapshot struct {
	Name     string
	Vertices []VertexRow
}

// BuildSnapshot walks g (and, while depth allows, its nested composites)
// and resolves every port's final shape/type/connection/staticness against
// solver. depth < 0 means unlimited; depth == 0 stops after g itself.
// symbolic forces dim-var display even for dims the solver bound to a
// concrete value, for callers that want the raw symbolic form.
func BuildSnapshot(g *graph.Graph, solver *shape.Solver, depth int, symbolic bool) *Snapshot {
	var labeler *shape.Labeler
	if symbolic {
		labeler = shape.NewLabelerSymbolic(solver, seenOrder(g, solver))
	} else {
		labeler = shape.NewLabeler(solver, seenOrder(g, solver))
	}

	snap := &Snapshot{Name: g.Name}
	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		vr := VertexRow{Name: name, Label: vertexLabel(v)}
		for _, portID := range v.Ports {
			port := g.Port(portID)
			vr.Ports = append(vr.Ports, PortRow{
				Name:       port.Name,
				Role:       port.Role.String(),
				Shape:      labeler.Render(port.Shape),
				Type:       port.Type.String(),
				Connection: connectionLabel(g, port),
				Static:     port.Static,
			})
		}
		if v.Kind == graph.KindComposite && depth != 0 {
			vr.Sub = BuildSnapshot(v.Sub, solver, depth-1, symbolic)
		}
		snap.Vertices = append(snap.Vertices, vr)
	}
	return snap
}

// Options controls the text rendering only; BuildSnapshot's structured
// output always carries every field regardless of these toggles.
type Options struct {
	Depth    int  // < 0 = unlimited, 0 = outermost table only
	Shapes   bool // include the Shapes column
	Types    bool // include the Types column
	Symbolic bool // render dim-vars symbolically even when solver-bound
}

// DefaultOptions renders every level with both the Shapes and Types
// columns, and concrete dim-var bindings resolved.
func DefaultOptions() Options {
	return Options{Depth: -1, Shapes: true, Types: true}
}

// Render produces the full summary: the outermost table titled with root's
// name, followed by one table per nested composite, in pre-order.
func Render(root *graph.Graph, solver *shape.Solver) string {
	return RenderWithOptions(root, solver, DefaultOptions())
}

// RenderDepth is Render but stops descending into nested composites once
// depth levels have been emitted; depth < 0 means unlimited, depth == 0
// means only the outermost table.
func RenderDepth(root *graph.Graph, solver *shape.Solver, depth int) string {
	opts := DefaultOptions()
	opts.Depth = depth
	return RenderWithOptions(root, solver, opts)
}

// RenderWithOptions is Render with full control over depth and which
// columns the text table carries (spec §6's `--shapes`/`--types`/
// `--symbolic` CLI flags thread straight through to here).
func RenderWithOptions(root *graph.Graph, solver *shape.Solver, opts Options) string {
	snap := BuildSnapshot(root, solver, opts.Depth, opts.Symbolic)
	var b strings.Builder
	writeSnapshot(&b, snap, opts)
	return b.String()
}

func writeSnapshot(b *strings.Builder, snap *Snapshot, opts Options) {
	var rows []row
	for _, vr := range snap.Vertices {
		rows = append(rows, row{key: vr.Name + " (" + vr.Label + ")", isLabel: true})
		for _, p := range vr.Ports {
			rows = append(rows, row{
				key:       "  " + p.Name,
				shapeText: p.Shape,
				typeText:  p.Type,
				connText:  p.Connection,
				showShape: opts.Shapes,
				showType:  opts.Types,
			})
		}
	}
	writeTable(b, snap.Name, rows)

	for _, vr := range snap.Vertices {
		if vr.Sub != nil {
			writeSnapshot(b, vr.Sub, opts)
		}
	}
}

func vertexLabel(v *graph.Vertex) string {
	if v.Kind == graph.KindComposite {
		return v.Sub.Name
	}
	return v.Op.String()
}

// connectionLabel renders the Connections column legend from spec §4.8:
// "$key" for external aliases, "Submodel.port" for internal edges, the
// literal value, or "--" for an unconnected output.
func connectionLabel(g *graph.Graph, port *graph.Port) string {
	switch port.Endpoint.Kind {
	case graph.EndpointAlias:
		return "$" + port.Endpoint.Alias
	case graph.EndpointEdge:
		parts := make([]string, len(port.Endpoint.Targets))
		for i, t := range port.Endpoint.Targets {
			parts[i] = t.Submodel + "." + t.Port
		}
		return strings.Join(parts, ", ")
	case graph.EndpointLiteral:
		return literalText(port.Endpoint.Literal)
	default:
		return "--"
	}
}

func literalText(v graph.LiteralValue) string {
	switch v.Atom {
	case typesys.Bool:
		return strconv.FormatBool(v.Bool)
	case typesys.Int:
		return strconv.Itoa(v.Int)
	default:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	}
}

// seenOrder walks g's ports in declaration order to build the composite's
// first-seen dim-var numbering (spec §4.1). A variadic port's atoms are
// expanded through solver first, so a "..." placeholder the solver has
// already absorbed a rank for contributes its ghost dim-vars here too,
// instead of being invisible to the numbering pass.
func seenOrder(g *graph.Graph, solver *shape.Solver) []core.DimID {
	var order []core.DimID
	seen := make(map[core.DimID]bool)
	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		for _, portID := range v.Ports {
			for _, a := range solver.ExpandAtoms(g.Port(portID).Shape) {
				if a.IsConcrete() || seen[a.Dim] {
					continue
				}
				seen[a.Dim] = true
				order = append(order, a.Dim)
			}
		}
	}
	return order
}

type row struct {
	key       string
	shapeText string
	typeText  string
	connText  string
	isLabel   bool
	showShape bool
	showType  bool
}

func writeTable(b *strings.Builder, title string, rows []row) {
	atomWidth := maxAtomWidth(rows)
	shapes := make([]string, len(rows))

	widthKey, widthShape, widthType := 0, 0, 0
	for i, r := range rows {
		widthKey = max(widthKey, len(r.key))
		if r.showShape {
			shapes[i] = rightAlignAtoms(r.shapeText, atomWidth)
			widthShape = max(widthShape, len(shapes[i]))
		}
		if r.showType {
			widthType = max(widthType, len(r.typeText))
		}
	}

	fmt.Fprintf(b, "%s\n", title)
	fmt.Fprintf(b, "%s\n", strings.Repeat("=", len(title)))
	for i, r := range rows {
		if r.isLabel {
			fmt.Fprintf(b, "%s\n", r.key)
			continue
		}
		fmt.Fprintf(b, "%-*s", widthKey, r.key)
		if r.showShape {
			fmt.Fprintf(b, "%s%-*s", colSep, widthShape, shapes[i])
		}
		if r.showType {
			fmt.Fprintf(b, "%s%-*s", colSep, widthType, r.typeText)
		}
		fmt.Fprintf(b, ": %s\n", r.connText)
	}
	b.WriteByte('\n')
}

// maxAtomWidth scans every shown shape string in the table for its widest
// individual atom (a dim-var label or concrete value between the commas),
// so every bracketed shape in the table pads its atoms to the same width.
func maxAtomWidth(rows []row) int {
	width := 0
	for _, r := range rows {
		if !r.showShape {
			continue
		}
		for _, atom := range splitAtoms(r.shapeText) {
			width = max(width, len(atom))
		}
	}
	return width
}

// splitAtoms returns shapeText's comma-separated atoms with the enclosing
// brackets stripped, or nil for the scalar marker "--" or an empty shape.
func splitAtoms(shapeText string) []string {
	if !strings.HasPrefix(shapeText, "[") || !strings.HasSuffix(shapeText, "]") {
		return nil
	}
	inner := shapeText[1 : len(shapeText)-1]
	if inner == "" {
		return nil
	}
	return strings.Split(inner, ",")
}

// rightAlignAtoms re-renders shapeText with every atom right-aligned to
// width inside its brackets (spec §4.8); non-bracketed shapes (the scalar
// marker) pass through unchanged.
func rightAlignAtoms(shapeText string, width int) string {
	atoms := splitAtoms(shapeText)
	if atoms == nil {
		return shapeText
	}
	for i, a := range atoms {
		atoms[i] = fmt.Sprintf("%*s", width, a)
	}
	return "[" + strings.Join(atoms, ",") + "]"
}
