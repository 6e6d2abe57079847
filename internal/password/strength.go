package password

import (
	"strings"

	"github.com/nbutton23/zxcvbn-go"
)

// StrengthReport summarizes how resistant a credential value is to guessing.
type StrengthReport struct {
	Length           int
	Score            int // 0 (trivial) to 4 (strong)
	Entropy          float64
	CrackTimeDisplay string
	Classes          []string // registered classes that appear in the value
}

// Score estimates the strength of value using the zxcvbn estimator. The value
// itself is only inspected, never logged or stored.
func Score(value string) StrengthReport {
	match := zxcvbn.PasswordStrength(value, nil)

	var classes []string
	for _, name := range Classes() {
		if strings.ContainsAny(value, alphabets[name]) {
			classes = append(classes, name)
		}
	}

	return StrengthReport{
		Length:           len(value),
		Score:            match.Score,
		Entropy:          match.Entropy,
		CrackTimeDisplay: match.CrackTimeDisplay,
		Classes:          classes,
	}
}
