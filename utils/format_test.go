package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0.00", FormatUSD(0))
	assert.Equal(t, "$162.00", FormatUSD(162))
	assert.Equal(t, "$1,234.50", FormatUSD(1234.5))
	assert.Equal(t, "-$5.25", FormatUSD(-5.25))
}

func TestFormatUSDWhole(t *testing.T) {
	assert.Equal(t, "$280", FormatUSDWhole(280))
	assert.Equal(t, "$1,200", FormatUSDWhole(1199.5))
	assert.Equal(t, "$12,000", FormatUSDWhole(12000))
}
