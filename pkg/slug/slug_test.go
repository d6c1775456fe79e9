package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Cyrillic(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Кучета", "kucheta"},
		{"Котки", "kotki"},
		{"Суха храна", "suha-hrana"},
		{"Играчки и аксесоари", "igrachki-i-aksesoari"},
		{"Щастливи лапи", "shtastlivi-lapi"},
		{"Жълта птица", "zhalta-ptitsa"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Generate(tt.name), "name %q", tt.name)
	}
}

func TestGenerate_Latin(t *testing.T) {
	assert.Equal(t, "hello-world", Generate("Hello   World!"))
	assert.Equal(t, "royal-canin-adult", Generate("Royal Canin Adult"))
}

func TestGenerate_CollapsesAndTrimsHyphens(t *testing.T) {
	assert.Equal(t, "a-b", Generate("--a---b--"))
	assert.Equal(t, "a-b", Generate("a & b"))
}

func TestGenerate_UncoveredCharactersStripped(t *testing.T) {
	// Characters outside the transliteration table fall through to the
	// non-alphanumeric cleanup.
	assert.Equal(t, "100", Generate("€ 100 小"))
}

func TestGenerate_Empty(t *testing.T) {
	assert.Equal(t, "", Generate(""))
	assert.Equal(t, "", Generate("   "))
	assert.Equal(t, "", Generate("!!!"))
}
