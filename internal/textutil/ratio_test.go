package textutil

import "testing"

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"simple", "The Quick Fox", []string{"the", "quick", "fox"}},
		{"punctuation", "mission: impossible - fallout", []string{"mission", "impossible", "fallout"}},
		{"short tokens kept", "QI XL v 2", []string{"qi", "xl", "v", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"both empty", "", "", 0},
		{"identical", "the matrix", "the matrix", 100},
		{"reordered tokens", "empire strikes back the", "the empire strikes back", 100},
		{"case and punctuation ignored", "Lord of the Rings!", "lord of the rings", 100},
		{"fully different", "zzzz", "qqqq", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSortRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("TokenSortRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenSortRatioPartial(t *testing.T) {
	got := TokenSortRatio("lord of the rings", "lord of the rings return of the king")
	if got <= 0 || got >= 100 {
		t.Errorf("partial overlap ratio = %d, want strictly between 0 and 100", got)
	}

	closer := TokenSortRatio("the matrix", "the matrix reloaded")
	further := TokenSortRatio("the matrix", "completely unrelated film")
	if closer <= further {
		t.Errorf("expected %d (near match) > %d (unrelated)", closer, further)
	}
}

func TestTokenSortRatioSymmetric(t *testing.T) {
	a, b := "blade runner", "blade runner director's cut"
	if TokenSortRatio(a, b) != TokenSortRatio(b, a) {
		t.Error("TokenSortRatio must be symmetric")
	}
}
