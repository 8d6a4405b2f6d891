package query

import (
	"testing"

	"plastwarehouse/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getter(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(getter(map[string]string{
		"material":      "ABS",
		"thickness_min": "2",
		"thickness_max": "3,5",
		"thickness":     " ",
	}))

	require.NoError(t, err)
	assert.Equal(t, "ABS", f.Material)
	assert.Nil(t, f.Thickness)
	require.NotNil(t, f.ThicknessMin)
	assert.Equal(t, "2", f.ThicknessMin.String())
	assert.Equal(t, "3.5", f.ThicknessMax.String())
}

func TestParseFilter_Invalid(t *testing.T) {
	_, err := ParseFilter(getter(map[string]string{"thickness_min": "thick"}))

	assert.ErrorIs(t, err, common.ErrInvalidCriteria)
	var paramErr *common.ParamError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "thickness_min", paramErr.Param)
	assert.Equal(t, "thick", paramErr.Value)
}

func TestParseFilter_Empty(t *testing.T) {
	f, err := ParseFilter(getter(nil))

	require.NoError(t, err)
	assert.True(t, Compile(f).Empty())
}
