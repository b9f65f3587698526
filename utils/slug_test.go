package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Slugify(t *testing.T) {
	cases := map[string]string{
		"Backend Rewrite":          "backend-rewrite",
		"  Q3 -- Roadmap!  ":       "q3-roadmap",
		"UPPER":                    "upper",
		"a":                        "a",
		"---":                      "",
		"Sprint #42 (final)":       "sprint-42-final",
		"много latin only: v2.0.1": "latin-only-v2-0-1",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "input %q", in)
	}
}
