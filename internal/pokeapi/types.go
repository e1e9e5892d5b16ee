package pokeapi

// ListResponse is the paginated pokemon index.
type ListResponse struct {
	Count   int          `json:"count"`
	Results []ListResult `json:"results"`
}

// ListResult is one index entry; the id is the trailing segment of URL.
type ListResult struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Detail is a single pokemon record.
type Detail struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Height         int    `json:"height"`
	Weight         int    `json:"weight"`
	BaseExperience int    `json:"base_experience"`
	Species        struct {
		URL string `json:"url"`
	} `json:"species"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

// Species carries the pointer to the evolution chain resource.
type Species struct {
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// EvolutionChain is the nested chain resource.
type EvolutionChain struct {
	Chain ChainNode `json:"chain"`
}

// ChainNode is one node of the evolution tree.
type ChainNode struct {
	Species struct {
		Name string `json:"name"`
	} `json:"species"`
	EvolvesTo []ChainNode `json:"evolves_to"`
}
