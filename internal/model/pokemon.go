package model

// Pokemon is a catalog entry mirrored from the PokeAPI. The id is assigned
// by the origin, never by us.
type Pokemon struct {
	ID             int    `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Height         int    `db:"height" json:"height"`                   // decimetres
	Weight         int    `db:"weight" json:"weight"`                   // hectograms
	BaseExperience int    `db:"base_experience" json:"base_experience"`
	SpriteBase64   string `db:"sprite_base64" json:"sprite_base64"`
	Hash           string `db:"hash" json:"hash"`

	Evolutions []Evolution `db:"-" json:"evolutions"`
}

// Evolution is one step of a pokemon's evolution line, ordered by Position.
// Rows are owned by their pokemon and removed with it.
type Evolution struct {
	ID        int64  `db:"id" json:"-"`
	PokemonID int    `db:"pokemon_id" json:"-"`
	Name      string `db:"name" json:"name"`
	Position  int    `db:"position" json:"position"`
}

// EvolutionNames returns the evolution names in sequence order.
func (p *Pokemon) EvolutionNames() []string {
	names := make([]string, len(p.Evolutions))
	for i, e := range p.Evolutions {
		names[i] = e.Name
	}
	return names
}
