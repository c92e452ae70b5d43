package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todomvc/internal/model"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	items := []model.Item{
		{ID: "a", Title: "Buy milk"},
		{ID: "b", Title: "Walk dog", Completed: true},
	}

	b, err := Encode(items)
	require.NoError(t, err)

	got, err := Decode(b)
	require.NoError(t, err)
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmpty(t *testing.T) {
	b, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestDecodeEmptyValue(t *testing.T) {
	for _, in := range []string{"", "  \n", "null", "[]"} {
		got, err := Decode([]byte(in))
		require.NoError(t, err, "input %q", in)
		assert.NotNil(t, got, "input %q", in)
		assert.Empty(t, got, "input %q", in)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":         `{{{`,
		"object":           `{"id":"a","title":"x","completed":false}`,
		"wrong id type":    `[{"id":1,"title":"x","completed":false}]`,
		"wrong flag type":  `[{"id":"a","title":"x","completed":"yes"}]`,
		"missing id":       `[{"title":"x","completed":false}]`,
		"empty id":         `[{"id":"","title":"x","completed":false}]`,
		"missing title":    `[{"id":"a","completed":false}]`,
		"missing complete": `[{"id":"a","title":"x"}]`,
		"duplicate id":     `[{"id":"a","title":"x","completed":false},{"id":"a","title":"y","completed":true}]`,
		"array of strings": `["a","b"]`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeNormalizesTitles(t *testing.T) {
	got, err := Decode([]byte(`[
		{"id":"1","title":"   ","completed":false},
		{"id":"2","title":"","completed":true},
		{"id":"3","title":"  Buy milk \t","completed":false},
		{"id":"4","title":"Walk dog","completed":true}
	]`))
	require.NoError(t, err)
	want := []model.Item{
		{ID: "3", Title: "Buy milk"},
		{ID: "4", Title: "Walk dog", Completed: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, DefaultNamespace, Namespace(""))
	assert.Equal(t, "todos-jquery", Namespace("todos-jquery"))
}
