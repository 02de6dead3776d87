package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	UID  string `json:"uid" yaml:"uid"`
	Name string `json:"name" yaml:"name"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatTable},
		{input: "  Table ", want: FormatTable},
		{input: "JSON", want: FormatJSON},
		{input: "yml", want: FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrint(t *testing.T) {
	data := []entry{{UID: "u1", Name: "docs"}}
	view := NewTable("UID", "NAME").Add("u1", "docs")

	t.Run("Table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable, false).Print(data, view))
		assert.Contains(t, buf.String(), "UID")
		assert.Contains(t, buf.String(), "docs")
	})

	t.Run("TableWithoutView", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable, false).Print(data, nil))
		assert.Contains(t, buf.String(), `"uid": "u1"`)
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatJSON, false).Print(data, view))
		assert.JSONEq(t, `[{"uid":"u1","name":"docs"}]`, buf.String())
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatYAML, false).Print(data, view))
		assert.Equal(t, "- uid: u1\n  name: docs\n", buf.String())
	})
}

func TestKeyValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, KeyValues{{"Name", "docs"}, {"Size", "0"}}))
	assert.Contains(t, buf.String(), "Name:")
	assert.Contains(t, buf.String(), "docs")
	assert.NotContains(t, buf.String(), "NAME")
}

func TestStatusMessages(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, FormatTable, false).Success("done")
	assert.Equal(t, "done\n", buf.String())

	buf.Reset()
	NewPrinter(&buf, FormatTable, true).Warning("careful")
	assert.Equal(t, "\033[33mcareful\033[0m\n", buf.String())

	buf.Reset()
	p := NewPrinter(&buf, FormatJSON, true)
	p.Success("done")
	assert.True(t, p.Structured())
	assert.Empty(t, buf.String())
}
