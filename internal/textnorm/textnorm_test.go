package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapses whitespace", "  Full \t Blood   Count ", "Full Blood Count"},
		{"non-breaking space", "Amoxicillin\u00a0Capsule", "Amoxicillin Capsule"},
		{"ligature", "Ceftri\ufb01", "Ceftrifi"},
		{"ligature ffl", "Ba\ufb04e", "Baffle"},
		{"soft hyphen", "Amoxi\u00adcillin", "Amoxicillin"},
		{"narrow no-break space", "500\u202fmg", "500 mg"},
		{"decomposed accent composed", "Ce\u0301phalexin", "C\u00e9phalexin"},
		{"keeps superscript", "Cream 15 g/m\u00b2", "Cream 15 g/m\u00b2"},
		{"keeps vulgar fraction", "\u00bd Tablet", "\u00bd Tablet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestQuotes(t *testing.T) {
	assert.Equal(t, "(24's)", Quotes("(24\u2019s)"))
	assert.Equal(t, "(6's)", Quotes("(6`s)"))
	assert.Equal(t, "(12's)", Quotes("(12's)"))
}

func TestLines(t *testing.T) {
	got := Lines("CODE  NAME\r\nAMOXICCA1   Amoxicillin\n\n  12.50 ")
	assert.Equal(t, []string{"CODE NAME", "AMOXICCA1 Amoxicillin", "", "12.50"}, got)
}
