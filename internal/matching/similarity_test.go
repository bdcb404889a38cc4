package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"Identical", "current employer", "current employer", 1.0},
		{"Disjoint", "email address", "start date", 0.0},
		{"Half overlap", "current employer", "current title", 1.0 / 3.0},
		{"Empty left", "", "email", 0.0},
		{"Empty right", "email", "", 0.0},
		{"Both empty", "", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestJaccardSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"what is your email address", "email address"},
		{"current employer", "who is your current employer"},
		{"skills", "list your relevant skills"},
	}
	for _, pair := range pairs {
		assert.InDelta(t, Similarity(pair[0], pair[1]), Similarity(pair[1], pair[0]), 1e-9)
	}
}

func TestJaccardBounded(t *testing.T) {
	pairs := [][2]string{
		{"email", "email address phone number street city"},
		{"a b c d e", "c d e f g"},
		{"x", "y"},
	}
	for _, pair := range pairs {
		score := Similarity(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

// Adding unrelated tokens to the observed text must never raise the score.
func TestJaccardMonotonic(t *testing.T) {
	template := "who is your current employer"

	base := Similarity("current employer", template)
	noisy := Similarity("current employer blah unrelated filler words", template)

	assert.LessOrEqual(t, noisy, base)
}
