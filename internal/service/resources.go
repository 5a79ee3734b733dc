package service

import "movies-search-api/internal/model"

// Index names of the catalog resources.
const (
	FilmIndex   = "movies"
	PersonIndex = "persons"
	GenreIndex  = "genres"
)

var (
	Films   = Resource[model.Film]{Index: FilmIndex, Decode: model.DecodeFilm}
	Persons = Resource[model.Person]{Index: PersonIndex, Decode: model.DecodePerson}
	Genres  = Resource[model.Genre]{Index: GenreIndex, Decode: model.DecodeGenre}
)

type (
	FilmService   = Lookup[model.Film]
	PersonService = Lookup[model.Person]
	GenreService  = Lookup[model.Genre]
)

// NewFilmService creates the lookup for films.
func NewFilmService(deps Dependencies) *FilmService {
	return NewLookup(Films, deps)
}

// NewPersonService creates the lookup for persons.
func NewPersonService(deps Dependencies) *PersonService {
	return NewLookup(Persons, deps)
}

// NewGenreService creates the lookup for genres.
func NewGenreService(deps Dependencies) *GenreService {
	return NewLookup(Genres, deps)
}
