package model

// Rubrica is an address-book entry.  Nome is optional.
type Rubrica struct {
	ID   uint64 `json:"id"`
	Nome string `json:"nome"`
}
