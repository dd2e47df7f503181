package aggregate

import (
	"sort"

	"github.com/tickbook/tickbook/internal/filter"
	"github.com/tickbook/tickbook/internal/model"
)

// Node is one level of the hierarchical breakdown. The root sums everything,
// each child sums one inner-field value, and each grandchild is a single
// (inner, outer) pair.
type Node struct {
	Name     string
	Hours    float64
	Records  []model.Record
	Children []*Node
}

// Tree is the hierarchical aggregation result.
type Tree struct {
	Root       *Node
	Empty      EmptyReason
	BadPattern bool
}

// RootName labels the synthetic root node of every tree.
const RootName = "All"

// BuildTree groups the filtered set by an (inner, outer) field pair. The
// optional pattern is matched case-insensitively against the outer field
// before aggregation; a pattern that compiles but matches nothing yields
// EmptyNoMatch, which is distinct from an empty input set.
func BuildTree(scored []filter.Scored, inner, outer model.FieldTag, pattern string) Tree {
	re, ok := compilePattern(pattern)
	if !ok {
		return Tree{Empty: EmptyNoMatch, BadPattern: true}
	}
	if len(scored) == 0 {
		return Tree{Empty: EmptyNoRecords}
	}

	type pairKey struct {
		inner string
		outer string
	}
	pairs := map[pairKey]*Node{}
	for _, s := range scored {
		outerValue := s.Record.Field(outer)
		if re != nil && !re.MatchString(outerValue) {
			continue
		}
		key := pairKey{inner: s.Record.Field(inner), outer: outerValue}
		leaf := pairs[key]
		if leaf == nil {
			leaf = &Node{Name: outerValue}
			pairs[key] = leaf
		}
		leaf.Hours += s.Hours
		leaf.Records = append(leaf.Records, s.Record)
	}
	if len(pairs) == 0 {
		return Tree{Empty: EmptyNoMatch}
	}

	root := &Node{Name: RootName}
	inners := map[string]*Node{}
	for key, leaf := range pairs {
		parent := inners[key.inner]
		if parent == nil {
			parent = &Node{Name: key.inner}
			inners[key.inner] = parent
			root.Children = append(root.Children, parent)
		}
		parent.Hours += leaf.Hours
		parent.Records = append(parent.Records, leaf.Records...)
		parent.Children = append(parent.Children, leaf)
	}
	for _, parent := range root.Children {
		root.Hours += parent.Hours
		root.Records = append(root.Records, parent.Records...)
		sort.Slice(parent.Children, func(i, j int) bool {
			return parent.Children[i].Name < parent.Children[j].Name
		})
	}
	sort.Slice(root.Children, func(i, j int) bool {
		return root.Children[i].Name < root.Children[j].Name
	})

	return Tree{Root: root, Empty: NotEmpty}
}
