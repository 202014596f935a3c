package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptsAreTrimmed(t *testing.T) {
	for name, p := range map[string]string{"metadata": Metadata(), "transactions": Transactions()} {
		assert.NotEmpty(t, p, name)
		assert.Equal(t, strings.TrimSpace(p), p, name)
	}
	assert.True(t, strings.HasPrefix(Metadata(), "Extract metadata"))
	assert.Contains(t, Transactions(), "exactly 6 string elements")
}
