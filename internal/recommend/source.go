package recommend

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"reelmatch/internal/media"
)

// ParseModelOutput extracts recommendation lists from a raw model response.
// Models wrap the JSON payload in prose or code fences, so the first
// balanced JSON object is located before parsing. The movies and shows
// arrays are read tolerantly: years may arrive as strings, genre lists may
// be missing, and any tmdb_id field is ignored since upstream IDs are
// untrusted. Items without a title are dropped.
func ParseModelOutput(raw string) (movies, shows []MediaItem, err error) {
	payload, ok := extractJSONObject(raw)
	if !ok {
		return nil, nil, errors.New("no JSON object found in model output")
	}
	if !gjson.Valid(payload) {
		return nil, nil, errors.New("extracted JSON object is malformed")
	}
	doc := gjson.Parse(payload)
	movies = parseItems(doc.Get("movies"), media.KindMovie)
	shows = parseItems(doc.Get("shows"), media.KindShow)
	if len(movies) == 0 && len(shows) == 0 {
		return nil, nil, errors.New("model output contains no recommendations")
	}
	return movies, shows, nil
}

func parseItems(value gjson.Result, kind media.Kind) []MediaItem {
	if !value.IsArray() {
		return nil
	}
	var items []MediaItem
	value.ForEach(func(_, entry gjson.Result) bool {
		title := strings.TrimSpace(entry.Get("title").String())
		if title == "" {
			return true
		}
		item := MediaItem{
			Title:    title,
			Kind:     kind,
			Year:     parseYear(entry.Get("year")),
			Director: strings.TrimSpace(entry.Get("director").String()),
		}
		entry.Get("genres").ForEach(func(_, genre gjson.Result) bool {
			if g := strings.TrimSpace(genre.String()); g != "" {
				item.Genres = append(item.Genres, g)
			}
			return true
		})
		items = append(items, item)
		return true
	})
	return items
}

// parseYear accepts numeric years and strings like "1999" or "1999-03-30".
func parseYear(value gjson.Result) int {
	switch value.Type {
	case gjson.Number:
		return int(value.Int())
	case gjson.String:
		text := strings.TrimSpace(value.String())
		if len(text) >= 4 {
			if year, err := strconv.Atoi(text[:4]); err == nil {
				return year
			}
		}
	}
	return 0
}

// extractJSONObject returns the first balanced top-level JSON object in the
// text, honoring string literals and escapes while counting braces.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
