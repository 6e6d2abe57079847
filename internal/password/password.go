// Package password generates random credential strings from configurable
// character classes, using crypto/rand as the entropy source.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"

	validation "github.com/jellydator/validation"
)

// Character class names accepted in Request.Classes.
const (
	ClassLower   = "lower"
	ClassUpper   = "upper"
	ClassDigits  = "digits"
	ClassSymbols = "symbols"
)

var (
	// ErrInvalidConfiguration indicates a bad length or an empty class set.
	ErrInvalidConfiguration = errors.New("invalid generator configuration")
	// ErrUnsupportedClass indicates a class name with no registered alphabet.
	ErrUnsupportedClass = errors.New("unsupported character class")
)

// alphabets maps each class name to its source alphabet. Symbols are
// restricted to single-byte ASCII punctuation so drawing stays byte-indexed.
var alphabets = map[string]string{
	ClassLower:   "abcdefghijklmnopqrstuvwxyz",
	ClassUpper:   "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	ClassDigits:  "0123456789",
	ClassSymbols: "!@#$%&*()_+-=[]{}|;:,.<>?/",
}

// Request describes a single generation. It is transient: constructed per
// invocation and discarded afterwards.
type Request struct {
	Length  int
	Classes []string
}

// DefaultRequest returns the default generation request: 16 characters with
// every registered class enabled.
func DefaultRequest() Request {
	return Request{
		Length:  16,
		Classes: []string{ClassLower, ClassUpper, ClassDigits, ClassSymbols},
	}
}

// Validate checks the request before any random draw happens.
func (r Request) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Length,
			validation.Required.Error("length is required"),
			validation.Min(1).Error("length must be at least 1"),
		),
		validation.Field(&r.Classes,
			validation.Required.Error("at least one character class must be enabled"),
		),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), ErrInvalidConfiguration)
	}

	for _, class := range r.Classes {
		if _, ok := alphabets[class]; !ok {
			return fmt.Errorf("%q: %w", class, ErrUnsupportedClass)
		}
	}

	return nil
}

// Classes returns the registered class names in sorted order.
func Classes() []string {
	names := make([]string, 0, len(alphabets))
	for name := range alphabets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Alphabet returns the source alphabet for a registered class name.
func Alphabet(class string) (string, bool) {
	a, ok := alphabets[class]
	return a, ok
}

// Generate draws req.Length characters uniformly at random from the union of
// the enabled class alphabets. When the length allows it, the output is
// guaranteed to contain at least one character from every enabled class; the
// guaranteed draws are mixed back in with a crypto/rand Fisher-Yates shuffle
// so their positions stay unpredictable.
//
// The value is returned to the caller and nothing else: it is never logged
// or stored.
func Generate(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	// Build the combined alphabet, collapsing duplicate class names.
	var pool string
	var sets []string
	seen := make(map[string]bool, len(req.Classes))
	for _, class := range req.Classes {
		if seen[class] {
			continue
		}
		seen[class] = true
		pool += alphabets[class]
		sets = append(sets, alphabets[class])
	}

	result := make([]byte, req.Length)

	// One guaranteed draw per class, when they all fit.
	guaranteed := 0
	if req.Length >= len(sets) {
		for i, set := range sets {
			ch, err := randChar(set)
			if err != nil {
				return "", err
			}
			result[i] = ch
		}
		guaranteed = len(sets)
	}

	for i := guaranteed; i < req.Length; i++ {
		ch, err := randChar(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := secureShuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

// randChar picks one character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("failed to read from entropy source: %w", err)
	}
	return charset[n.Int64()], nil
}

// secureShuffle performs a Fisher-Yates shuffle driven by crypto/rand.
func secureShuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("failed to read from entropy source: %w", err)
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
