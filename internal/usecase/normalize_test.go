package usecase

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Johnnie Walker", "johnnie walker"},
		{"strips punctuation", "Jack Daniel's (Old No.7)", "jack daniel s old no 7"},
		{"collapses whitespace", "  Gin   Tonic  ", "gin tonic"},
		{"keeps digits", "Tusker 500ml", "tusker 500ml"},
		{"empty input", "", ""},
		{"only punctuation", "?!&", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"formatted currency", "KES 1,200", 1200},
		{"plain digits", "2500", 2500},
		{"digits with spaces", " 3 500 ", 3500},
		{"no digits", "free", 0},
		{"empty", "", 0},
		{"decimal separator dropped", "KES 1,200.50", 120050},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePrice(tt.input); got != tt.want {
				t.Errorf("ParsePrice(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
