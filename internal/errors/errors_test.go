package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTypeUnwrapsWrappedErrors(t *testing.T) {
	base := MissingField("prices[3]", "item_id")
	wrapped := fmt.Errorf("resolve prices: %w", base)

	assert.True(t, IsType(wrapped, TypeMissingField))
	assert.False(t, IsType(wrapped, TypeConfigLookup))
	assert.False(t, IsType(fmt.Errorf("plain"), TypeMissingField))
}

func TestErrorMessages(t *testing.T) {
	err := ConfigLookup("focus cost", 9)
	assert.Equal(t, "[CONFIG_LOOKUP] no focus cost entry for 9", err.Error())
	assert.Equal(t, 9, err.Context["key"])

	cause := fmt.Errorf("connection refused")
	net := Network("fetch quotes", cause)
	assert.Equal(t, "[NETWORK_ERROR] fetch quotes: connection refused", net.Error())
	assert.ErrorIs(t, net, cause)
}
