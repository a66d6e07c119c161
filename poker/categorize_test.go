package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoleClass(t *testing.T) {
	t.Parallel()
	tests := []struct {
		card1, card2 string
		class        string
		shape        Shape
	}{
		{"As", "Ah", "AA", ShapePair},
		{"Ks", "As", "AKs", ShapeSuited},
		{"9d", "Th", "T9o", ShapeOffsuit},
		{"2c", "7c", "72s", ShapeSuited},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			class, shape := HoleClass(MustParseCard(tt.card1), MustParseCard(tt.card2))
			assert.Equal(t, tt.class, class)
			assert.Equal(t, tt.shape, shape)
		})
	}
}

func TestHoleTier(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		card1    string
		card2    string
		expected Tier
	}{
		{"Pocket Aces", "As", "Ah", TierPremium},
		{"Pocket Jacks", "Jh", "Jd", TierPremium},
		{"Ace King offsuit", "Ac", "Kh", TierPremium},
		{"Pocket Tens", "Tc", "Th", TierStrong},
		{"Ace Jack offsuit", "Ad", "Jc", TierStrong},
		{"Pocket Sevens", "7h", "7c", TierMedium},
		{"Queen Jack suited", "Qd", "Jd", TierMedium},
		{"Pocket Twos", "2h", "2c", TierWeak},
		{"Eight Six suited", "8s", "6s", TierWeak},
		{"Seven Two offsuit", "7h", "2c", TierTrash},
		{"King Queen offsuit", "Kh", "Qc", TierTrash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HoleTier(MustParseCard(tt.card1), MustParseCard(tt.card2)))
		})
	}
}
