package model

// Trainer is a registered pokemon trainer. CPF is the unique natural key,
// stored normalized (digits only).
type Trainer struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Age  int    `db:"age" json:"age"`
	CPF  string `db:"cpf" json:"cpf"`
}
