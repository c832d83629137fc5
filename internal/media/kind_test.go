package media

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
		ok    bool
	}{
		{"movie", KindMovie, true},
		{"Movies", KindMovie, true},
		{"film", KindMovie, true},
		{"tv", KindShow, true},
		{"show", KindShow, true},
		{" Series ", KindShow, true},
		{"podcast", KindUnknown, false},
		{"", KindUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseKind(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseKind(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestKindMappings(t *testing.T) {
	if got := KindShow.TMDBSearchType(); got != "tv" {
		t.Errorf("TMDBSearchType(show) = %q, want tv", got)
	}
	if got := KindMovie.TMDBSearchType(); got != "movie" {
		t.Errorf("TMDBSearchType(movie) = %q, want movie", got)
	}
	if got := KindShow.PlexSectionType(); got != "show" {
		t.Errorf("PlexSectionType(show) = %q, want show", got)
	}
	if got := KindMovie.String(); got != "movie" {
		t.Errorf("String(movie) = %q, want movie", got)
	}
}
