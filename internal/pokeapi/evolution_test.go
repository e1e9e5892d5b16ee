package pokeapi

import (
	"reflect"
	"testing"
)

func node(name string, children ...ChainNode) ChainNode {
	n := ChainNode{EvolvesTo: children}
	n.Species.Name = name
	return n
}

func TestWalkChainLinear(t *testing.T) {
	root := node("charmander", node("charmeleon", node("charizard")))

	got := WalkChain(&root)
	want := []string{"charmander", "charmeleon", "charizard"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WalkChain() = %v, want %v", got, want)
	}
}

func TestWalkChainBranchingTakesFirstChild(t *testing.T) {
	// eevee evolves into several lines; only the first branch is kept.
	root := node("eevee", node("vaporeon"), node("jolteon"), node("flareon"))

	got := WalkChain(&root)
	want := []string{"eevee", "vaporeon"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WalkChain() = %v, want %v", got, want)
	}
}

func TestWalkChainSingleNode(t *testing.T) {
	root := node("ditto")

	got := WalkChain(&root)
	if !reflect.DeepEqual(got, []string{"ditto"}) {
		t.Errorf("WalkChain() = %v, want [ditto]", got)
	}
}

func TestWalkChainDeep(t *testing.T) {
	// A pathologically deep chain must not overflow: the walk is iterative.
	depth := 100000
	leaf := node("n0")
	for i := 1; i < depth; i++ {
		leaf = node("n", leaf)
	}

	got := WalkChain(&leaf)
	if len(got) != depth {
		t.Errorf("WalkChain() length = %d, want %d", len(got), depth)
	}
}
