package tree

import (
	"strings"
	"testing"
)

func TestAddAndFprint(t *testing.T) {
	tr := Tree{}
	tr.Add([]string{"1", "2", "4"})
	tr.Add([]string{"1", "2", "5"})
	tr.Add([]string{"1", "3"})

	var b strings.Builder
	tr.Fprint(&b, true, "")
	expected := "1\n" +
		"├ 2\n" +
		"│ ├ 4\n" +
		"│ └ 5\n" +
		"└ 3\n"
	if b.String() != expected {
		t.Errorf("Expected rendering\n%s\nbut got\n%s", expected, b.String())
	}
}

func TestAddSharedPrefix(t *testing.T) {
	tr := Tree{}
	tr.Add([]string{"1", "2"})
	tr.Add([]string{"1", "2"})
	if len(tr) != 1 {
		t.Errorf("Expected a single root but got %d", len(tr))
	}
	if len(tr["1"]) != 1 {
		t.Errorf("Expected a single child but got %d", len(tr["1"]))
	}
}
