package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Range string `validate:"oneof=1d 7d"`
	Take  int    `validate:"min=1,ltefield=Max"`
	Max   int    `validate:"max=20"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(&sample{Range: "7d", Take: 5, Max: 20}))

	err := ValidateStruct(&sample{Range: "2d", Take: 5, Max: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample.Range")
	assert.Contains(t, err.Error(), "oneof")

	err = ValidateStruct(&sample{Range: "1d", Take: 30, Max: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ltefield")
}
