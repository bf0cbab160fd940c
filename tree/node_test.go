package tree

import (
	"testing"
)

func TestNodeAddAndRemoveChildren(t *testing.T) {
	root := NewNode("root")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	root.AddChild(a).AddChild(b).AddChild(c)
	if root.ChildCount() != 3 {
		t.Fatalf("expected root to have 3 children, has %d", root.ChildCount())
	}
	if !root.RemoveChild(b) {
		t.Error("expected b to be removed from root")
	}
	if root.ChildCount() != 2 {
		t.Errorf("expected gap to be closed after removal, #children = %d", root.ChildCount())
	}
	if ch, _ := root.Child(1); ch != c {
		t.Logf("child #1 = %v", ch)
		t.Error("expected c to move to position 1")
	}
	if b.Parent() != nil {
		t.Error("expected removed child to have no parent")
	}
	if root.RemoveChild(b) {
		t.Error("did not expect removal of a non-child to succeed")
	}
}

func TestNodeInsertChildAt(t *testing.T) {
	root := NewNode(0)
	one, two, three := NewNode(1), NewNode(2), NewNode(3)
	root.AddChild(one).AddChild(three)
	root.InsertChildAt(1, two)
	for i, want := range []int{1, 2, 3} {
		ch, ok := root.Child(i)
		if !ok || ch.Payload != want {
			t.Errorf("expected child #%d to carry %d, is %v", i, want, ch)
		}
	}
	root.InsertChildAt(99, NewNode(4))
	if ch, _ := root.Child(3); ch.Payload != 4 {
		t.Errorf("expected out-of-range insert to append, child #3 = %v", ch)
	}
}

func TestNodeMoveBetweenParents(t *testing.T) {
	p1, p2 := NewNode("p1"), NewNode("p2")
	x := NewNode("x")
	p1.AddChild(x)
	p2.AddChild(x)
	if p1.ChildCount() != 0 {
		t.Error("expected x to be isolated from its previous parent")
	}
	if x.Parent() != p2 {
		t.Error("expected x to be a child of p2")
	}
}

func TestNodeRootAndSiblings(t *testing.T) {
	root := NewNode("root")
	a, b := NewNode("a"), NewNode("b")
	aa := NewNode("aa")
	root.AddChild(a).AddChild(b)
	a.AddChild(aa)
	if aa.Root() != root {
		t.Error("expected root of aa to be root")
	}
	if root.Root() != root {
		t.Error("expected root to be its own root")
	}
	if a.NextSibling() != b {
		t.Error("expected b to follow a")
	}
	if b.NextSibling() != nil || root.NextSibling() != nil {
		t.Error("expected no next sibling for last child or root")
	}
	if root.IndexOfChild(b) != 1 || root.IndexOfChild(aa) != -1 {
		t.Error("unexpected child index")
	}
}

func TestNodeWalkInDocumentOrder(t *testing.T) {
	root := NewNode("r")
	a, b := NewNode("a"), NewNode("b")
	root.AddChild(a).AddChild(b)
	a.AddChild(NewNode("a1")).AddChild(NewNode("a2"))
	b.AddChild(NewNode("b1"))
	var order []string
	root.Walk(func(n *Node[string]) bool {
		order = append(order, n.Payload)
		return n.Payload != "b" // do not descend into b
	})
	want := []string{"r", "a", "a1", "a2", "b"}
	if len(order) != len(want) {
		t.Fatalf("expected walk to visit %v, visited %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected visit #%d to be %s, is %s", i, want[i], order[i])
		}
	}
}

func TestNodeWalkToleratesMutation(t *testing.T) {
	root := NewNode("r")
	root.AddChild(NewNode("a")).AddChild(NewNode("b"))
	visited := 0
	root.Walk(func(n *Node[string]) bool {
		visited++
		if n.Payload == "a" {
			root.AddChild(NewNode("late"))
		}
		return true
	})
	if visited != 3 {
		t.Errorf("expected walk over a snapshot to visit 3 nodes, visited %d", visited)
	}
}
