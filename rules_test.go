package pagecarve_test

import (
	"testing"

	"github.com/mabho/pagecarve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Validate(t *testing.T) {
	t.Parallel()

	t.Run("default rules are valid", func(t *testing.T) {
		t.Parallel()

		rules := pagecarve.DefaultRules()
		require.NoError(t, rules.Validate())
	})

	t.Run("requires allowed tags", func(t *testing.T) {
		t.Parallel()

		rules := pagecarve.DefaultRules()
		rules.AllowedTags = nil

		err := rules.Validate()
		assert.Equal(t, pagecarve.EINVALID, pagecarve.ErrorCode(err))
	})

	t.Run("requires both sequence tags", func(t *testing.T) {
		t.Parallel()

		rules := pagecarve.DefaultRules()
		rules.Sequence.ScriptTag = ""

		err := rules.Validate()
		assert.Equal(t, pagecarve.EINVALID, pagecarve.ErrorCode(err))
	})
}

func TestRules_AllowedTag(t *testing.T) {
	t.Parallel()

	rules := pagecarve.DefaultRules()

	assert.True(t, rules.AllowedTag("p"))
	assert.True(t, rules.AllowedTag("BLOCKQUOTE"))
	assert.False(t, rules.AllowedTag("div"))
	assert.False(t, rules.AllowedTag("iframe"))
}
