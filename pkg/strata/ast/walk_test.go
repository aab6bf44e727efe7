package ast

import (
	"errors"
	"reflect"
	"testing"
)

func str(s string) *Node { return &Node{Kind: KindString, Literal: s} }

func seq(items ...*Node) *Node {
	return &Node{Kind: KindSequence, Items: items}
}

func TestWalk_SourceOrder(t *testing.T) {
	// {a: [x, y], b: !t z}
	root := &Node{
		Kind: KindMapping,
		Pairs: []Pair{
			{Key: str("a"), Value: seq(str("x"), str("y"))},
			{Key: str("b"), Value: &Node{Kind: KindTagged, Tag: "!t", Inner: str("z")}},
		},
	}

	var visited []string
	err := Walk(root, func(n *Node) error {
		switch n.Kind {
		case KindString:
			visited = append(visited, n.Literal)
		case KindTagged:
			visited = append(visited, n.Tag)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() failed: %v", err)
	}

	want := []string{"a", "x", "y", "b", "!t", "z"}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("visit order = %v, want %v", visited, want)
	}
}

func TestWalk_ErrorStopsTraversal(t *testing.T) {
	root := seq(str("one"), str("stop"), str("never"))

	sentinel := errors.New("stop")
	var visited []string
	err := Walk(root, func(n *Node) error {
		if n.Kind != KindString {
			return nil
		}
		if n.Literal == "stop" {
			return sentinel
		}
		visited = append(visited, n.Literal)
		return nil
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("Walk() error = %v, want sentinel", err)
	}
	if !reflect.DeepEqual(visited, []string{"one"}) {
		t.Errorf("visited = %v, want [one]", visited)
	}
}

func TestWalk_NilRoot(t *testing.T) {
	if err := Walk(nil, func(*Node) error { return nil }); err != nil {
		t.Errorf("Walk(nil) = %v, want nil", err)
	}
}

func TestWalk_DeepNesting(t *testing.T) {
	// 10000 levels of [[[...]]]; a recursive walk would risk the stack.
	root := str("leaf")
	for i := 0; i < 10000; i++ {
		root = seq(root)
	}

	count := 0
	if err := Walk(root, func(*Node) error { count++; return nil }); err != nil {
		t.Fatalf("Walk() failed: %v", err)
	}
	if count != 10001 {
		t.Errorf("visited %d nodes, want 10001", count)
	}
}
