package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"MixedCase123", "mixedcase123"},
		{"---", ""},
		{"", ""},
		{"Äpfel & Birnen", "äpfel-birnen"},
		{"a_b_c", "a-b-c"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.in), "input %q", tc.in)
	}
}

func TestMake_TruncatesLongInput(t *testing.T) {
	long := strings.Repeat("a", 300)
	out := Make(long)
	assert.Len(t, out, 200)
	assert.False(t, strings.HasSuffix(out, "-"))
}
