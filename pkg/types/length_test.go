package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"14", 14},
		{"14.5", 14.5},
		{"14.5 in", 14.5},
		{"~18cm", 18},
		{"about 12 inches", 12},
		{"1.2.3", 1.2},
		{"", 0},
		{"no number here", 0},
		{".", 0},
		{"..5", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseLength(tc.in), "ParseLength(%q)", tc.in)
	}
}

func TestBiggestCatch(t *testing.T) {
	small := &Catch{ID: "a", Length: `12"`}
	big := &Catch{ID: "b", Length: "18.5 in"}
	blank := &Catch{ID: "c"}

	assert.Same(t, big, BiggestCatch([]*Catch{small, big, blank}))
	assert.Same(t, small, BiggestCatch([]*Catch{small, blank}))
}

func TestBiggestCatchNoUsableLength(t *testing.T) {
	assert.Nil(t, BiggestCatch(nil))
	assert.Nil(t, BiggestCatch([]*Catch{{ID: "a", Length: "huge"}, {ID: "b"}}))
}

func TestBiggestCatchTieKeepsEarlier(t *testing.T) {
	first := &Catch{ID: "a", Length: "14"}
	second := &Catch{ID: "b", Length: `14"`}
	assert.Same(t, first, BiggestCatch([]*Catch{first, second}))
}
