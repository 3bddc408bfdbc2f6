package hcl_adapter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestConverter_ToCtyValue(t *testing.T) {
	c := NewConverter()

	v, err := c.ToCtyValue(map[string]any{
		"name":  "H1_Cu",
		"k":     0.38,
		"n":     3,
		"index": []string{"0:4"},
		"pairs": []any{[]string{"1", "1"}, []string{"1", "2"}},
		"empty": []any{},
		"num":   json.Number("1e-3"),
		"flag":  true,
	})
	require.NoError(t, err)
	require.True(t, v.Type().IsObjectType())

	assert.Equal(t, cty.StringVal("H1_Cu"), v.GetAttr("name"))
	assert.True(t, v.GetAttr("k").Equals(cty.NumberFloatVal(0.38)).True())
	assert.True(t, v.GetAttr("n").Equals(cty.NumberIntVal(3)).True())
	assert.Equal(t, 1, v.GetAttr("index").LengthInt())
	assert.Equal(t, 2, v.GetAttr("pairs").LengthInt())
	assert.Equal(t, cty.EmptyTupleVal, v.GetAttr("empty"))
	assert.True(t, v.GetAttr("flag").True())
}

func TestConverter_Unsupported(t *testing.T) {
	_, err := NewConverter().ToCtyValue(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ch")
}
