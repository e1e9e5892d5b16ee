package service

import "errors"

var (
	// ErrNotFound the requested record does not exist.
	ErrNotFound = errors.New("service: record not found")

	// ErrAlreadyCaptured the trainer already holds this pokemon.
	ErrAlreadyCaptured = errors.New("service: pokemon already captured by this trainer")

	// ErrDuplicateCPF a trainer with this CPF is already registered.
	ErrDuplicateCPF = errors.New("service: cpf already registered")

	// ErrInvalidCPF the CPF failed checksum validation.
	ErrInvalidCPF = errors.New("service: invalid cpf")

	// ErrInvalidAge the trainer age is out of range.
	ErrInvalidAge = errors.New("service: invalid age")

	// ErrInvalidName the trainer name is empty.
	ErrInvalidName = errors.New("service: invalid name")
)
