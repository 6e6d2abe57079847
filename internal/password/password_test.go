package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLength(t *testing.T) {
	for _, length := range []int{1, 2, 8, 16, 64, 128} {
		req := Request{Length: length, Classes: []string{ClassLower, ClassUpper, ClassDigits, ClassSymbols}}
		value, err := Generate(req)
		require.NoError(t, err)
		assert.Len(t, value, length)
	}
}

func TestGenerateAlphabetMembership(t *testing.T) {
	tests := []struct {
		name    string
		classes []string
	}{
		{name: "lowercase only", classes: []string{ClassLower}},
		{name: "digits only", classes: []string{ClassDigits}},
		{name: "lowercase and digits", classes: []string{ClassLower, ClassDigits}},
		{name: "all classes", classes: []string{ClassLower, ClassUpper, ClassDigits, ClassSymbols}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pool string
			for _, class := range tt.classes {
				pool += alphabets[class]
			}

			for i := 0; i < 50; i++ {
				value, err := Generate(Request{Length: 24, Classes: tt.classes})
				require.NoError(t, err)
				for _, ch := range value {
					assert.Contains(t, pool, string(ch))
				}
			}
		})
	}
}

func TestGenerateNonDeterministic(t *testing.T) {
	req := DefaultRequest()
	for i := 0; i < 100; i++ {
		a, err := Generate(req)
		require.NoError(t, err)
		b, err := Generate(req)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	}
}

func TestGeneratePerClassGuarantee(t *testing.T) {
	req := Request{Length: 4, Classes: []string{ClassLower, ClassUpper, ClassDigits, ClassSymbols}}
	for i := 0; i < 200; i++ {
		value, err := Generate(req)
		require.NoError(t, err)
		for _, class := range req.Classes {
			assert.True(t, strings.ContainsAny(value, alphabets[class]),
				"value %q is missing a %s character", value, class)
		}
	}
}

func TestGenerateShortValueSkipsGuarantee(t *testing.T) {
	// One character cannot cover two classes; generation must still succeed.
	req := Request{Length: 1, Classes: []string{ClassLower, ClassDigits}}
	value, err := Generate(req)
	require.NoError(t, err)
	assert.Len(t, value, 1)
	assert.True(t, strings.ContainsAny(value, alphabets[ClassLower]+alphabets[ClassDigits]))
}

func TestGenerateDuplicateClassesCollapsed(t *testing.T) {
	req := Request{Length: 3, Classes: []string{ClassDigits, ClassDigits, ClassDigits, ClassLower}}
	value, err := Generate(req)
	require.NoError(t, err)
	assert.Len(t, value, 3)
	assert.True(t, strings.ContainsAny(value, alphabets[ClassLower]))
}

func TestGenerateInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "zero length", req: Request{Length: 0, Classes: []string{ClassLower}}},
		{name: "negative length", req: Request{Length: -5, Classes: []string{ClassLower}}},
		{name: "empty class set", req: Request{Length: 12, Classes: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestGenerateUnsupportedClass(t *testing.T) {
	_, err := Generate(Request{Length: 12, Classes: []string{ClassLower, "emoji"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedClass)
	assert.Contains(t, err.Error(), "emoji")
}

func TestGenerateClassFrequency(t *testing.T) {
	// Over 1000 draws of 16 characters from {lower, digits}, both classes
	// must appear with frequency consistent with a uniform draw over a
	// 36-character pool (digits expected at 10/36 of all characters).
	const samples = 1000

	req := Request{Length: 16, Classes: []string{ClassLower, ClassDigits}}
	var lower, digits int
	for i := 0; i < samples; i++ {
		value, err := Generate(req)
		require.NoError(t, err)
		for _, ch := range value {
			switch {
			case ch >= 'a' && ch <= 'z':
				lower++
			case ch >= '0' && ch <= '9':
				digits++
			default:
				t.Fatalf("unexpected character %q in %q", ch, value)
			}
		}
	}

	total := float64(lower + digits)
	digitRatio := float64(digits) / total
	// Expected 10/36 = 0.278 with a generous tolerance; the per-class
	// guarantee nudges the ratio slightly towards 0.5.
	assert.InDelta(t, 10.0/36.0, digitRatio, 0.05)
	assert.Positive(t, lower)
	assert.Positive(t, digits)
}

func TestDefaultRequest(t *testing.T) {
	req := DefaultRequest()
	assert.Equal(t, 16, req.Length)
	assert.ElementsMatch(t, []string{ClassLower, ClassUpper, ClassDigits, ClassSymbols}, req.Classes)
	require.NoError(t, req.Validate())
}

func TestClasses(t *testing.T) {
	names := Classes()
	assert.Equal(t, []string{ClassDigits, ClassLower, ClassSymbols, ClassUpper}, names)

	for _, name := range names {
		alphabet, ok := Alphabet(name)
		require.True(t, ok)
		assert.NotEmpty(t, alphabet)
	}

	_, ok := Alphabet("emoji")
	assert.False(t, ok)
}
