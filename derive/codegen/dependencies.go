package codegen

import (
	"fmt"
	"go/ast"
	"sort"
	"strings"
)

// DependencyGraph is the graph of generated types. An edge A -> B means
// the codec of A is built from the codec of B.
type DependencyGraph struct {
	Nodes map[string]*TypeInfo
	Edges map[string][]string
}

// Cycle is a circular dependency: Path[0] depends on Path[1] and so on,
// and the last element depends on Path[0].
type Cycle struct {
	Path []string
}

func (c Cycle) String() string {
	return strings.Join(c.Path, " -> ") + " -> " + c.Path[0]
}

// BuildDependencyGraph builds the graph of the types in typeInfos that
// carry a directive.
func BuildDependencyGraph(typeInfos []*TypeInfo) *DependencyGraph {
	g := &DependencyGraph{
		Nodes: map[string]*TypeInfo{},
		Edges: map[string][]string{},
	}
	byName := map[string]*TypeInfo{}
	for _, t := range typeInfos {
		byName[t.Name] = t
		if t.Directive != nil {
			g.Nodes[t.Name] = t
		}
	}
	for name, t := range g.Nodes {
		seen := map[string]bool{}
		var fields []*FieldInfo
		switch t.Directive.Kind {
		case DeriveDirective:
			fields = t.Fields
		case UnionDirective:
			for _, alt := range t.Directive.Alternatives {
				if at, ok := byName[alt]; ok {
					fields = append(fields, at.Fields...)
				}
			}
		}
		for _, f := range fields {
			for _, ref := range references(f.ASTType) {
				if _, ok := g.Nodes[ref]; ok && !seen[ref] {
					seen[ref] = true
					g.Edges[name] = append(g.Edges[name], ref)
				}
			}
		}
	}
	return g
}

// references lists the local type names e mentions.
func references(e ast.Expr) []string {
	var refs []string
	ast.Inspect(e, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.SelectorExpr:
			return false
		case *ast.Ident:
			refs = append(refs, x.Name)
		}
		return true
	})
	return refs
}

// DetectCycles returns the cycles of g, each reported once starting from
// its smallest name.
func DetectCycles(g *DependencyGraph) []Cycle {
	names := make([]string, 0, len(g.Nodes))
	for n := range g.Nodes {
		names = append(names, n)
	}
	sort.Strings(names)

	const (
		unvisited = iota
		active
		done
	)
	state := map[string]int{}
	var (
		stack  []string
		cycles []Cycle
		visit  func(string)
	)
	visit = func(n string) {
		state[n] = active
		stack = append(stack, n)
		for _, m := range g.Edges[n] {
			switch state[m] {
			case unvisited:
				visit(m)
			case active:
				i := len(stack) - 1
				for stack[i] != m {
					i--
				}
				cycles = append(cycles, normalizeCycle(stack[i:]))
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
	}
	for _, n := range names {
		if state[n] == unvisited {
			visit(n)
		}
	}
	return cycles
}

func normalizeCycle(path []string) Cycle {
	lo := 0
	for i, n := range path {
		if n < path[lo] {
			lo = i
		}
	}
	res := make([]string, 0, len(path))
	res = append(res, path[lo:]...)
	res = append(res, path[:lo]...)
	return Cycle{Path: res}
}

func checkCycles(typeInfos []*TypeInfo) error {
	cycles := DetectCycles(BuildDependencyGraph(typeInfos))
	if len(cycles) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRecursive, cycles[0])
}
