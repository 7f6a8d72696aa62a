package translate

type Direction string

const (
	EnglishToDarija Direction = "en_to_darija"
	DarijaToEnglish Direction = "darija_to_en"
)

// ParseDirection maps a request value onto a Direction. Only the exact
// value "en_to_darija" selects English to Darija; callers substitute it
// when the field was not sent.
func ParseDirection(s string) Direction {
	if s == string(EnglishToDarija) {
		return EnglishToDarija
	}
	return DarijaToEnglish
}
