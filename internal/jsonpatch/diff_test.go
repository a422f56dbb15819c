package jsonpatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffObjects(t *testing.T) {
	a := map[string]any{"total_tax": "70200", "cess": "2700", "method_used": "none", "old": true}
	b := map[string]any{"total_tax": "0", "cess": "0", "method_used": "none", "new": false}

	ops := Diff(a, b, "")
	assert.Equal(t, []Op{
		{Op: "remove", Path: "/old"},
		{Op: "replace", Path: "/cess", Value: "0"},
		{Op: "add", Path: "/new", Value: false},
		{Op: "replace", Path: "/total_tax", Value: "0"},
	}, ops)
}

func TestDiffArrays(t *testing.T) {
	ops := Diff([]any{1.0, 2.0, 3.0}, []any{1.0, 5.0}, "/xs")
	assert.Equal(t, []Op{
		{Op: "replace", Path: "/xs/1", Value: 5.0},
		{Op: "remove", Path: "/xs/2"},
	}, ops)

	ops = Diff([]any{1.0}, []any{1.0, 2.0}, "")
	assert.Equal(t, []Op{{Op: "add", Path: "/1", Value: 2.0}}, ops)
}

func TestDiffTypeChange(t *testing.T) {
	ops := Diff(map[string]any{"a": 1.0}, []any{1.0}, "")
	assert.Equal(t, []Op{{Op: "replace", Path: "", Value: []any{1.0}}}, ops)

	assert.Empty(t, Diff(nil, nil, ""))
	assert.Equal(t, []Op{{Op: "replace", Path: "/x", Value: nil}}, Diff("v", nil, "/x"))
}

func TestEscapeKey(t *testing.T) {
	ops := Diff(map[string]any{}, map[string]any{"a/b~c": 1.0}, "")
	require.Len(t, ops, 1)
	assert.Equal(t, "/a~1b~0c", ops[0].Path)
}

func TestBetweenStructs(t *testing.T) {
	type result struct {
		Taxable string `json:"taxable_income"`
		Total   string `json:"total_tax"`
	}
	ops, err := Between(result{"1250000", "70200"}, result{"1250000", "0"})
	require.NoError(t, err)
	assert.Equal(t, []Op{{Op: "replace", Path: "/total_tax", Value: "0"}}, ops)
}
