package textkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntities(t *testing.T) {
	text := "Contact john.doe@example.com or visit https://example.com/page now. " +
		"Call +1 555-123-4567 before 12/05/2024. Tickets cost $19.99 each #bargain"

	entities := ExtractEntities(text)

	assert.Equal(t, []string{"john.doe@example.com"}, entities.Emails)
	assert.Equal(t, []string{"https://example.com/page"}, entities.URLs)
	assert.Equal(t, []string{"+1 555-123-4567"}, entities.Phones)
	assert.Equal(t, []string{"12/05/2024"}, entities.Dates)
	assert.Equal(t, []string{"$19.99"}, entities.Money)
	assert.Equal(t, []string{"#bargain"}, entities.Hashtags)
}

func TestExtractEntitiesVariants(t *testing.T) {
	entities := ExtractEntities("Pay 42,50€ or £10. Dates: 1-2-26 and 31/12/1999. Tags #go_lang #x")

	assert.Equal(t, []string{"42,50€", "£10"}, entities.Money)
	assert.Equal(t, []string{"1-2-26", "31/12/1999"}, entities.Dates)
	assert.Equal(t, []string{"#go_lang", "#x"}, entities.Hashtags)
}

func TestExtractEntitiesEmpty(t *testing.T) {
	entities := ExtractEntities("nothing to see here")

	assert.Empty(t, entities.Emails)
	assert.Empty(t, entities.URLs)
	assert.Empty(t, entities.Phones)
	assert.Empty(t, entities.Dates)
	assert.Empty(t, entities.Money)
	assert.Empty(t, entities.Hashtags)
}
