package match

import "testing"

func TestEditDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []string
		want int
	}{
		{"both empty", nil, nil, 0},
		{"a empty", nil, []string{"o", "n", "o"}, 3},
		{"b empty", []string{"o", "n"}, nil, 2},
		{"identical", []string{"D", "@"}, []string{"D", "@"}, 0},
		{"single substitution", []string{"k", "&", "t"}, []string{"k", "I", "t"}, 1},
		{"single insertion", []string{"s", "t", "O", "r"}, []string{"s", "t", "O", "r", "m"}, 1},
		{"swap costs two", []string{"a", "b"}, []string{"b", "a"}, 2},
		{
			"kitten sitting",
			[]string{"k", "i", "t", "t", "e", "n"},
			[]string{"s", "i", "t", "t", "i", "n", "g"},
			3,
		},
		// Values compare as whole phones: "aI" is one symbol, not two.
		{"whole phone values", []string{"aI"}, []string{"a", "I"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := editDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("editDistance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := editDistance(tt.b, tt.a); got != tt.want {
				t.Errorf("editDistance(%v, %v) = %d, want %d", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
