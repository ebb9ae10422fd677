package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_Up(t *testing.T) {
	got := Compare(83.33, Float64(66.67))
	assert.Equal(t, TrendUp, got)
	assert.Equal(t, "Up", got.String())
}

func TestCompare_Down(t *testing.T) {
	got := Compare(66.67, Float64(83.33))
	assert.Equal(t, TrendDown, got)
	assert.Equal(t, "Down", got.String())
}

func TestCompare_NoChange(t *testing.T) {
	got := Compare(90, Float64(90))
	assert.Equal(t, TrendNoChange, got)
	assert.Equal(t, "No Change", got.String())
}

func TestCompare_NilPrior(t *testing.T) {
	got := Compare(90, nil)
	assert.Equal(t, TrendNotApplicable, got)
	assert.Equal(t, "N/A", got.String())
}

func TestTrend_UnsetRendersEmpty(t *testing.T) {
	var tr Trend
	assert.Equal(t, "", tr.String())
}
