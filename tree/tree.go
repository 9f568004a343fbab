package tree

import (
	"fmt"
	"io"
	"sort"
)

// Code adapted from https://github.com/Tufin/asciitree, with a few modifications:
// - For method Add, path is a []string (instead of a string to be split on the '/' character)
// - Children are printed in sorted order, so the rendering is deterministic.

// Tree can be any map with:
// 1. Key that has method 'String() string'
// 2. Value is Tree itself
// You can replace this with your own tree
type Tree map[string]Tree

/**
 * Adds a path to the tree, sharing the already-present prefix of the path.
 */
func (tree Tree) Add(path []string) {
	if len(path) == 0 {
		return
	}

	nextTree, ok := tree[path[0]]
	if !ok {
		nextTree = Tree{}
		tree[path[0]] = nextTree
	}
	nextTree.Add(path[1:])
}

func (tree Tree) Fprint(w io.Writer, root bool, padding string) {
	if tree == nil {
		return
	}

	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for index, k := range keys {
		fmt.Fprintf(w, "%s%s\n", padding+getPadding(root, getBoxType(index, len(tree))), k)
		tree[k].Fprint(w, false, padding+getPadding(root, getBoxTypeExternal(index, len(tree))))
	}
}

type BoxType int

const (
	Regular BoxType = iota
	Last
	AfterLast
	Between
)

func (boxType BoxType) String() string {
	switch boxType {
	case Regular:
		return "\u251c" // ├
	case Last:
		return "\u2514" // └
	case AfterLast:
		return " "
	case Between:
		return "\u2502" // │
	default:
		panic("invalid box type")
	}
}

func getBoxType(index int, len int) BoxType {
	if index+1 == len {
		return Last
	} else if index+1 > len {
		return AfterLast
	}
	return Regular
}

func getBoxTypeExternal(index int, len int) BoxType {
	if index+1 == len {
		return AfterLast
	}
	return Between
}

func getPadding(root bool, boxType BoxType) string {
	if root {
		return ""
	}

	return boxType.String() + " "
}
