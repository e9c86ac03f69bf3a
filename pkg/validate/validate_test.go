package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
)

func TestWord(t *testing.T) {
	testCases := map[string]struct {
		input    string
		field    string
		expected string
		err      string
	}{
		"plain": {
			input:    "araba",
			expected: "araba",
		},
		"trimmed": {
			input:    "  \tgüzel \n",
			expected: "güzel",
		},
		"inner spaces kept": {
			input:    " göz kulak olmak ",
			expected: "göz kulak olmak",
		},
		"empty": {
			input: "",
			err:   "term cannot be empty",
		},
		"only whitespace": {
			input: "   \n\t ",
			err:   "term cannot be empty",
		},
		"custom field": {
			input: " ",
			field: "text",
			err:   "text cannot be empty",
		},
		"exactly max": {
			input:    strings.Repeat("ş", MaxTermLength),
			expected: strings.Repeat("ş", MaxTermLength),
		},
		"too long": {
			input: strings.Repeat("a", MaxTermLength+1),
			err:   "term is too long (maximum 200 characters)",
		},
		"too long after trim is fine": {
			input:    "  " + strings.Repeat("a", MaxTermLength) + "  ",
			expected: strings.Repeat("a", MaxTermLength),
		},
		"invalid utf8": {
			input: "ab\xffc",
			err:   "term must be valid UTF-8",
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			got, err := Word(tc.input, tc.field)
			if tc.err != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tc.err)
				assert.Equal(t, dicterr.CodeValidation, dicterr.CodeOf(err))
				var verr *dicterr.ValidationError
				require.ErrorAs(t, err, &verr)
				field := tc.field
				if field == "" {
					field = "term"
				}
				assert.Equal(t, field, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "abc", Sanitize(" a\x00b\x1fc\x7f "))
	assert.Equal(t, "a\tb\nc", Sanitize("a\tb\nc"))
	assert.Equal(t, "", Sanitize("\x01\x02"))
}

func TestKeys(t *testing.T) {
	allowed := []string{"q", "dict", "retries"}
	assert.NoError(t, Keys([]string{"q", "dict"}, allowed))
	assert.NoError(t, Keys(nil, allowed))

	err := Keys([]string{"q", "zeta", "alpha"}, allowed)
	require.Error(t, err)
	assert.EqualError(t, err, "invalid options: alpha, zeta. Allowed: q, dict, retries")
	var verr *dicterr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "options", verr.Field)
}
