package dag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JrodM/a-tree-go/internal/ast"
)

// ToGraphviz renders the tree as a DOT digraph, grouping nodes into
// same-rank clusters by level so the arena's shared-DAG structure is
// visible at a glance. Intended for debugging, not for parsing.
func (t *ATree[T]) ToGraphviz() string {
	var b strings.Builder
	b.WriteString("digraph atree {\n")
	b.WriteString("  rankdir=BT;\n")

	byLevel := make(map[int][]int)
	for idx, e := range t.arena.entries {
		if e == nil {
			continue
		}
		byLevel[e.level] = append(byLevel[e.level], idx)
	}

	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	for _, level := range levels {
		idxs := byLevel[level]
		sort.Ints(idxs)
		b.WriteString("  { rank=same;\n")
		for _, idx := range idxs {
			e := t.arena.entries[idx]
			b.WriteString(fmt.Sprintf("    %s;\n", nodeLabel(idx, e)))
		}
		b.WriteString("  }\n")
	}

	for _, level := range levels {
		for _, idx := range byLevel[level] {
			e := t.arena.entries[idx]
			if e.kind != branchKind {
				continue
			}
			access := e.children[0]
			other := e.children[1]
			b.WriteString(fmt.Sprintf("  n%d -> n%d;\n", idx, access))
			if e.operator == ast.Or {
				b.WriteString(fmt.Sprintf("  n%d -> n%d;\n", idx, other))
			} else {
				// AND's non-access child has no real edge; drawn dashed
				// since it is only ever reached lazily, on demand.
				b.WriteString(fmt.Sprintf("  n%d -> n%d [style=dashed];\n", idx, other))
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeLabel[T comparable](idx int, e *entry[T]) string {
	shape := "box"
	label := ""
	switch e.kind {
	case leafKind:
		shape = "ellipse"
		label = fmt.Sprintf("L%d\\nattr=%d cost=%d", idx, e.predicate.Attribute, e.cost)
	case branchKind:
		label = fmt.Sprintf("%s%d\\n%s lvl=%d", nodeKindLetter(e), idx, e.operator, e.level)
	}
	if e.isRoot() {
		shape = "doublecircle"
		label += fmt.Sprintf("\\nsubs=%d", len(e.subscriptions))
	}
	return fmt.Sprintf("n%d [shape=%s,label=\"%s\"]", idx, shape, label)
}

func nodeKindLetter[T comparable](e *entry[T]) string {
	if e.isRoot() {
		return "R"
	}
	return "I"
}
