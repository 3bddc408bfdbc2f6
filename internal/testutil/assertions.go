package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the captured log output contains a message.
func AssertLogged(t *testing.T, logs *SafeBuffer, msg string) {
	t.Helper()

	require.True(t,
		strings.Contains(logs.String(), msg),
		"expected log message %q was not found in logs", msg,
	)
}
