package media

import "strings"

// Kind distinguishes the two item classes the pipeline reconciles.
type Kind int

const (
	KindUnknown Kind = iota
	KindMovie
	KindShow
)

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindShow:
		return "show"
	default:
		return "unknown"
	}
}

// TMDBSearchType maps the kind to the TMDB search endpoint segment.
func (k Kind) TMDBSearchType() string {
	if k == KindShow {
		return "tv"
	}
	return "movie"
}

// OverseerrMediaType maps the kind to Overseerr's mediaType discriminator.
func (k Kind) OverseerrMediaType() string {
	if k == KindShow {
		return "tv"
	}
	return "movie"
}

// PlexSectionType maps the kind to the Plex library section type.
func (k Kind) PlexSectionType() string {
	if k == KindShow {
		return "show"
	}
	return "movie"
}

// ParseKind interprets common spellings of the two media kinds.
func ParseKind(value string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movie", "movies", "film":
		return KindMovie, true
	case "show", "shows", "tv", "series":
		return KindShow, true
	default:
		return KindUnknown, false
	}
}
