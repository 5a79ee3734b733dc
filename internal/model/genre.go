package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Genre is a document from the "genres" index.
type Genre struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

func (g Genre) validate() error {
	if g.ID == uuid.Nil {
		return missing("id")
	}
	if g.Name == "" {
		return missing("name")
	}
	return nil
}

// DecodeGenre builds a Genre from a raw document.
func DecodeGenre(raw json.RawMessage) (Genre, error) {
	return decode[Genre](raw, "genre")
}
