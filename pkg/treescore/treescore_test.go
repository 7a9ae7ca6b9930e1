package treescore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_NoParents(t *testing.T) {
	res := Compute("child", nil, map[string]float64{})
	assert.False(t, res.Applicable)
	assert.Equal(t, -1.0, res.Value())
	assert.Equal(t, 0, res.ScoredParents)
	assert.Empty(t, res.MissingParents)
	assert.Contains(t, res.Reason, "no parents")
}

func TestCompute_AllParentsScored(t *testing.T) {
	res := Compute("child", []string{"a", "b"}, map[string]float64{"a": 0.8, "b": 0.6})
	assert.True(t, res.Applicable)
	assert.InDelta(t, 0.7, res.Score, 1e-9)
	assert.InDelta(t, 0.7, res.Value(), 1e-9)
	assert.Equal(t, 2, res.ScoredParents)
	assert.Empty(t, res.MissingParents)
}

func TestCompute_SomeParentsMissing(t *testing.T) {
	res := Compute("child", []string{"a", "b", "c"}, map[string]float64{"a": 0.8, "b": 0.6})
	assert.True(t, res.Applicable)
	assert.InDelta(t, 0.7, res.Score, 1e-9)
	assert.Equal(t, 2, res.ScoredParents)
	assert.Equal(t, []string{"c"}, res.MissingParents)
}

func TestCompute_NoScoredParents(t *testing.T) {
	res := Compute("child", []string{"a", "b"}, map[string]float64{})
	assert.False(t, res.Applicable)
	assert.Equal(t, -1.0, res.Value())
	assert.Equal(t, 0, res.ScoredParents)
	assert.Equal(t, []string{"a", "b"}, res.MissingParents)
}

func TestCompute_ExtraKnownScoresIgnored(t *testing.T) {
	known := map[string]float64{"a": 0.4, "unrelated": 0.99}
	res := Compute("child", []string{"a"}, known)
	assert.True(t, res.Applicable)
	assert.InDelta(t, 0.4, res.Score, 1e-9)
	assert.Equal(t, 1, res.ScoredParents)
}
