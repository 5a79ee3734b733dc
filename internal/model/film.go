package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// PersonName is a credited person nested inside a film document.
type PersonName struct {
	Name string `json:"name"`
}

// Film is a movie document from the "movies" index.
type Film struct {
	ID          uuid.UUID    `json:"id"`
	IMDBRating  *float64     `json:"imdb_rating"`
	Genre       []string     `json:"genre"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Type        *string      `json:"type"`
	Actors      []PersonName `json:"actors"`
	Directors   []PersonName `json:"directors"`
	Writers     []PersonName `json:"writers"`
}

func (f Film) validate() error {
	if f.ID == uuid.Nil {
		return missing("id")
	}
	if f.Title == "" {
		return missing("title")
	}
	return nil
}

// DecodeFilm builds a Film from a raw document.
func DecodeFilm(raw json.RawMessage) (Film, error) {
	return decode[Film](raw, "film")
}
