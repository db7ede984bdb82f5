package dmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "DELETE", Delete.String())
	assert.Equal(t, "EQUAL", Equal.String())
	assert.Equal(t, "INSERT", Insert.String())
}

func TestEditScriptText1Text2(t *testing.T) {
	script := EditScript{
		{Equal, "The "},
		{Delete, "quick brown "},
		{Insert, "slow "},
		{Equal, "fox"},
	}
	assert.Equal(t, "The quick brown fox", script.Text1())
	assert.Equal(t, "The slow fox", script.Text2())
}

func TestEditScriptLevenshtein(t *testing.T) {
	cases := []struct {
		name  string
		ops   EditScript
		wantD int
	}{
		{"empty", EditScript{}, 0},
		{"pure equal", EditScript{{Equal, "abc"}}, 0},
		{"replace", EditScript{{Delete, "abc"}, {Insert, "xy"}}, 3},
		{"insert only", EditScript{{Equal, "a"}, {Insert, "bc"}}, 2},
		{"delete only", EditScript{{Delete, "abc"}, {Equal, "d"}}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantD, tc.ops.Levenshtein())
		})
	}
}
