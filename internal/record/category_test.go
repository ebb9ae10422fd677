package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize_Bands(t *testing.T) {
	cases := []struct {
		percent float64
		want    Category
		label   string
	}{
		{84.99, CategoryBelow85, "Below 85"},
		{85, Category85To87Half, "85 to below 87.5"},
		{87.49, Category85To87Half, "85 to below 87.5"},
		{87.5, Category87HalfTo90, "87.5 to below 90"},
		{89.99, Category87HalfTo90, "87.5 to below 90"},
		{90, Category90To94, "90 to below 94"},
		{93.99, Category90To94, "90 to below 94"},
		{94, Category94AndAbove, "94 and above"},
		{100, Category94AndAbove, "94 and above"},
	}
	for _, tc := range cases {
		got := Categorize(tc.percent)
		assert.Equal(t, tc.want, got, "percent %v", tc.percent)
		assert.Equal(t, tc.label, got.String())
	}
}

func TestCategory_UnsetRendersEmpty(t *testing.T) {
	var c Category
	assert.Equal(t, "", c.String())
}
