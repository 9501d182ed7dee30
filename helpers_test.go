/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// assertDictEqual compares dictionaries with Equal and reports both sides in the textual form.
func assertDictEqual(t *testing.T, expected, actual *Dictionary) {
	t.Helper()
	require.Truef(t, expected.Equal(actual), "dictionaries are not equal:\nexpected:\n%s\nactual:\n%s",
		Serialize(expected, WithKeywordWidth(0)), Serialize(actual, WithKeywordWidth(0)))
}
