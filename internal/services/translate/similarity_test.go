package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "salam", 0},
		{"salam", "", 0},
		{"salam", "salam", 100},
		{"abcd", "bcde", 75},
		{"abcde", "abcxy", 60},
		{"labas 3lik", "labas alik", 90},
		{"كيداير", "كيف داير", 85.71428571428571},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9, "%q vs %q", tt.a, tt.b)
	}
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 72, RoundScore(72.5))
	assert.Equal(t, 74, RoundScore(73.5))
	assert.Equal(t, 86, RoundScore(85.71428571428571))
	assert.Equal(t, 0, RoundScore(0))
}

func TestVerifyThresholds(t *testing.T) {
	tests := []struct {
		name       string
		a, b       string
		wantLabel  string
		wantStatus string
		wantScore  int
	}{
		{"identical is robust", "salam", "salam", LabelRobust, "Certifié Robuste ✅", 100},
		{"exactly sixty is validated", "abcde", "abcxy", LabelValidated, "Validé 👌", 60},
		{"exactly thirty is uncertain", "abcdefghij", "abcxxxxxxx", LabelUncertain, "Nuance Incertaine ⚠️", 30},
		{"empty side is uncertain", "", "salam", LabelUncertain, "Nuance Incertaine ⚠️", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Verify(tt.a, tt.b)
			assert.True(t, v.Verified)
			assert.Equal(t, tt.wantLabel, v.Label)
			assert.Equal(t, tt.wantStatus, v.Status)
			if assert.NotNil(t, v.Score) {
				assert.Equal(t, tt.wantScore, *v.Score)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, EnglishToDarija, ParseDirection("en_to_darija"))
	assert.Equal(t, DarijaToEnglish, ParseDirection(""))
	assert.Equal(t, DarijaToEnglish, ParseDirection(" en_to_darija "))
	assert.Equal(t, DarijaToEnglish, ParseDirection("EN_TO_DARIJA"))
	assert.Equal(t, DarijaToEnglish, ParseDirection("darija_to_en"))
	assert.Equal(t, DarijaToEnglish, ParseDirection("fr_to_en"))
}
