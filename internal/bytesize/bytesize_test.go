package bytesize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Size
		wantErr bool
	}{
		{"0", 0, false},
		{"1024", 1024, false},
		{"1024B", 1024, false},
		{"1Ki", KiB, false},
		{"100MiB", 100 * MiB, false},
		{"1gi", GiB, false},
		{"2TiB", 2 * TiB, false},
		{"1K", 1000, false},
		{"100MB", 100 * MB, false},
		{" 1 Gi ", GiB, false},
		{"1.5Mi", Size(1.5 * float64(MiB)), false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1Gi", 0, true},
		{"10XB", 0, true},
		{"9999999Ti", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "0", Size(0).String())
	assert.Equal(t, "1000", KB.String())
	assert.Equal(t, "1Ki", KiB.String())
	assert.Equal(t, "1536Ki", Size(1536*KiB).String())
	assert.Equal(t, "1Gi", GiB.String())

	for _, s := range []Size{0, 1, KB, 3 * MiB, 5 * GiB, 1536 * KiB} {
		back, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestYAML(t *testing.T) {
	var v struct {
		Capacity Size `yaml:"capacity"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("capacity: 512Mi\n"), &v))
	assert.Equal(t, 512*MiB, v.Capacity)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "capacity: 512Mi\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("capacity: lots\n"), &v))
}
