package sentiment

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// normalizationAlpha dampens the raw valence sum the same way VADER's
// compound score does, keeping the result in (-1, 1).
const normalizationAlpha = 15.0

// Lexicon scores text with a small valence lexicon tuned for crypto social
// chatter. The compound valence in [-1, 1] is shifted to [0, 1] so higher
// always means more bullish.
type Lexicon struct {
	valence map[string]float64
}

// NewLexicon creates a lexicon scorer with the built-in vocabulary.
func NewLexicon() *Lexicon {
	return &Lexicon{valence: defaultValence()}
}

func defaultValence() map[string]float64 {
	return map[string]float64{
		// Bullish
		"moon":      3.0,
		"mooning":   3.0,
		"pump":      2.5,
		"pumping":   2.5,
		"bullish":   2.5,
		"rocket":    2.0,
		"breakout":  2.0,
		"rally":     2.0,
		"surge":     2.0,
		"gem":       1.5,
		"buy":       1.5,
		"hodl":      1.5,
		"gains":     1.5,
		"up":        1.0,
		"good":      1.0,
		"huge":      1.0,
		"explode":   2.0,
		"parabolic": 2.0,

		// Bearish
		"dump":    -2.5,
		"dumping": -2.5,
		"bearish": -2.5,
		"crash":   -2.5,
		"rug":     -3.0,
		"rugpull": -3.0,
		"scam":    -3.0,
		"sell":    -1.5,
		"short":   -1.5,
		"drop":    -1.5,
		"down":    -1.0,
		"bad":     -1.0,
		"dead":    -2.0,
		"exit":    -1.0,
		"fear":    -1.5,
	}
}

// Score returns a sentiment value in [0, 1] for the text. Text with no
// recognized words scores a flat 0.5.
func (l *Lexicon) Score(ctx context.Context, text string) (float64, error) {
	sum := 0.0
	for _, token := range tokenize(text) {
		if v, ok := l.valence[token]; ok {
			sum += v
		}
	}

	compound := sum / math.Sqrt(sum*sum+normalizationAlpha)
	return (compound + 1) / 2, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
