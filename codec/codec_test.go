package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level struct {
	Name    string   `json:"name" yaml:"name"`
	Width   int      `json:"width" yaml:"width"`
	Enemies []string `json:"enemies" yaml:"enemies"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json", "yaml", "yml"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.NotNil(t, c)
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_DecodeDocument(t *testing.T) {
	want := level{Name: "intro", Width: 64, Enemies: []string{"slime", "bat"}}

	tests := []struct {
		codec Codec
		data  string
	}{
		{JSON{}, `{"name":"intro","width":64,"enemies":["slime","bat"]}`},
		{GoJSON{}, `{"name":"intro","width":64,"enemies":["slime","bat"]}`},
		{YAML{}, "name: intro\nwidth: 64\nenemies:\n  - slime\n  - bat\n"},
	}

	for _, tt := range tests {
		t.Run(tt.codec.Name(), func(t *testing.T) {
			var got level
			require.NoError(t, tt.codec.Unmarshal([]byte(tt.data), &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestCodecs_MalformedInput(t *testing.T) {
	var v level
	assert.Error(t, JSON{}.Unmarshal([]byte("{"), &v))
	assert.Error(t, GoJSON{}.Unmarshal([]byte("{"), &v))
	assert.Error(t, YAML{}.Unmarshal([]byte("name: [unclosed"), &v))
}

func TestGoJSON_Append(t *testing.T) {
	out, err := GoJSON{}.Append([]byte("x="), map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `x={"a":1}`, string(out))
}

func TestMustMarshal_DefaultCodec(t *testing.T) {
	assert.JSONEq(t, `{"name":"a","width":1,"enemies":null}`, string(MustMarshal(nil, level{Name: "a", Width: 1})))
	assert.Panics(t, func() { MustMarshal(JSON{}, func() {}) })
}
