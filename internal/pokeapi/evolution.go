package pokeapi

// WalkChain flattens an evolution tree into the linear sequence of species
// names starting at root. Only the first branch is followed at each level;
// alternate evolutions are intentionally discarded. The walk is iterative,
// so chain depth is unbounded.
func WalkChain(root *ChainNode) []string {
	names := make([]string, 0, 3)
	for node := root; node != nil; {
		names = append(names, node.Species.Name)
		if len(node.EvolvesTo) == 0 {
			break
		}
		node = &node.EvolvesTo[0]
	}
	return names
}
