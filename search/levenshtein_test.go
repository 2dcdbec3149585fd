package search

import (
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "reconnaissance", "reconnaissance", 0},
		{"both empty", "", "", 0},
		{"empty left", "", "cat", 3},
		{"empty right", "cat", "", 3},
		{"single substitution", "cat", "cut", 1},
		{"single deletion", "reconnaissance", "reconnaissnce", 1},
		{"single insertion", "cat", "cart", 1},
		{"transposed letters", "form", "from", 2},
		{"unrelated", "xyzxyz", "reconnaissance", 14},
		{"runes not bytes", "naïve", "naive", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"satellite", "satelite"},
		{"apparatus", "aparatus"},
		{"", "word"},
	}

	for _, pair := range pairs {
		ab := Distance(pair[0], pair[1])
		ba := Distance(pair[1], pair[0])
		if ab != ba {
			t.Errorf("Distance(%q, %q) = %d but reversed gives %d", pair[0], pair[1], ab, ba)
		}
	}
}
