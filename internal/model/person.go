package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Person is a document from the "persons" index.
type Person struct {
	ID       uuid.UUID   `json:"id"`
	FullName string      `json:"full_name"`
	Role     []string    `json:"role"`
	FilmsID  []uuid.UUID `json:"films_id"`
}

func (p Person) validate() error {
	if p.ID == uuid.Nil {
		return missing("id")
	}
	if p.FullName == "" {
		return missing("full_name")
	}
	return nil
}

// DecodePerson builds a Person from a raw document.
func DecodePerson(raw json.RawMessage) (Person, error) {
	return decode[Person](raw, "person")
}
