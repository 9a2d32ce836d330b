package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireDetail fails unless errs holds an error for field with the given message.
func requireDetail(t *testing.T, errs ValidationErrors, field, detail string) {
	t.Helper()

	for _, ve := range errs {
		if ve.Field == field {
			assert.Equal(t, detail, ve.Detail)
			return
		}
	}
	require.Failf(t, "missing validation error", "no error for field %s in %v", field, errs)
}
