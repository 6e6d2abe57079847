package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"toolbelt/internal/password"
)

func TestPasswdRequest(t *testing.T) {
	reset := func() {
		passwdLength = 16
		passwdClasses = nil
		noLower, noUpper, noDigits, noSymbols = false, false, false, false
	}
	defer reset()

	tests := []struct {
		name    string
		setup   func()
		classes []string
	}{
		{
			name:    "defaults include every class",
			setup:   func() {},
			classes: []string{password.ClassLower, password.ClassUpper, password.ClassDigits, password.ClassSymbols},
		},
		{
			name:    "exclusion flags remove classes",
			setup:   func() { noDigits = true; noSymbols = true },
			classes: []string{password.ClassLower, password.ClassUpper},
		},
		{
			name:    "explicit classes win over exclusions",
			setup:   func() { noLower = true; passwdClasses = []string{password.ClassLower} },
			classes: []string{password.ClassLower},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset()
			tt.setup()

			req := passwdRequest()
			assert.Equal(t, 16, req.Length)
			assert.Equal(t, tt.classes, req.Classes)
		})
	}
}

func TestGauge(t *testing.T) {
	assert.Contains(t, gauge(0), strings.Repeat("░", 30))
	assert.Contains(t, gauge(100), strings.Repeat("█", 30))

	half := gauge(50)
	assert.Contains(t, half, strings.Repeat("█", 15))
	assert.True(t, strings.HasSuffix(half, "50.0%"))

	// Out-of-range values clamp the bar but report the raw number.
	assert.Contains(t, gauge(150), strings.Repeat("█", 30))
	assert.Contains(t, gauge(-5), strings.Repeat("░", 30))
}
