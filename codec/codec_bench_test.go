package codec

import "testing"

type benchTile struct {
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	Kind string `json:"kind" yaml:"kind"`
}

type benchMap struct {
	Name  string            `json:"name" yaml:"name"`
	Tags  []string          `json:"tags" yaml:"tags"`
	Props map[string]string `json:"props" yaml:"props"`
	Tiles []benchTile       `json:"tiles" yaml:"tiles"`
}

func newBenchMap() benchMap {
	m := benchMap{
		Name:  "overworld",
		Tags:  []string{"outdoor", "day", "music:field"},
		Props: map[string]string{"author": "level-team", "version": "3"},
	}
	for i := range 256 {
		m.Tiles = append(m.Tiles, benchTile{X: i % 16, Y: i / 16, Kind: "grass"})
	}
	return m
}

func benchmarkCodecUnmarshal(b *testing.B, c Codec) {
	b.Helper()
	b.ReportAllocs()

	data := MustMarshal(c, newBenchMap())
	b.SetBytes(int64(len(data)))

	var v benchMap
	b.ResetTimer()
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCodec_Unmarshal(b *testing.B) {
	b.Run("stdlib", func(b *testing.B) { benchmarkCodecUnmarshal(b, JSON{}) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecUnmarshal(b, GoJSON{}) })
	b.Run("yaml", func(b *testing.B) { benchmarkCodecUnmarshal(b, YAML{}) })
}
