package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/binstruct"
)

func counterSchema(t *testing.T) *binstruct.Schema {
	t.Helper()
	return binstruct.NewSchema("Counter").
		Field("name", binstruct.Char(8)).
		Field("total", binstruct.Uint64().WithDefault(0)).
		Field("deltas", binstruct.Array(2, binstruct.Int16().WithDefault(0))).
		MustBuild()
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil transcoder")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestMarshal(t *testing.T) {
	inst, err := counterSchema(t).New("hits", uint64(1)<<63, []any{-1, 2})
	require.NoError(t, err)

	data, err := New().Marshal(inst)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"hits","total":9223372036854775808,"deltas":[-1,2]}`, string(data))
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()
	original, err := counterSchema(t).New("hits", uint64(1)<<63, []any{-1, 2})
	require.NoError(t, err)

	data, err := c.Marshal(original)
	require.NoError(t, err)

	restored, err := original.Schema().New()
	require.NoError(t, err)
	require.NoError(t, c.Unmarshal(data, restored))
	assert.Equal(t, original.String(), restored.String())
}

func TestUnmarshal_Partial(t *testing.T) {
	inst, err := counterSchema(t).New("hits", 5)
	require.NoError(t, err)

	require.NoError(t, New().Unmarshal([]byte(`{"total": 6}`), inst))
	assert.Equal(t, `Counter(name = "hits", total = 6, deltas = [0, 0])`, inst.String())
}

func TestUnmarshal_Errors(t *testing.T) {
	inst, err := counterSchema(t).New()
	require.NoError(t, err)
	c := New()

	assert.Error(t, c.Unmarshal([]byte(`{`), inst))
	assert.ErrorIs(t, c.Unmarshal([]byte(`{"total": 1.5}`), inst), binstruct.ErrEncode)
	assert.ErrorIs(t, c.Unmarshal([]byte(`{"total": -1}`), inst), binstruct.ErrEncode)
	assert.ErrorIs(t, c.Unmarshal([]byte(`{"other": 1}`), inst), binstruct.ErrUnknownField)
	assert.ErrorIs(t, c.Unmarshal([]byte(`{"deltas": [1]}`), inst), binstruct.ErrEncode)
}
