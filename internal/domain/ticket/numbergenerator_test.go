package ticket

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var numberPattern = regexp.MustCompile(`^TICKET-\d{8}-\d{5}$`)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "TICKET-20260830-00042", FormatNumber("20260830", 42))
}

func TestFallbackNumber_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		n := FallbackNumber()
		assert.Regexp(t, numberPattern, n)
	}
}
