package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/models"
)

var sampleResults = []Result{{
	Document: "person.ts",
	Definitions: []models.Definition{{
		Name:    "Person",
		Fields:  []models.DefinitionField{{Name: "name", Type: "String"}, {Name: "friends", Type: "Option<Vec<String>>"}},
		Derives: []string{"Debug"},
	}},
}}

func TestWriteResults(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{
			format: FormatText,
			want:   "# person.ts\nPerson     [Debug]\n  name     String\n  friends  Option<Vec<String>>\n",
		},
		{
			format: FormatYAML,
			want: `- document: person.ts
  definitions:
    - name: Person
      fields:
        - name: name
          type: String
        - name: friends
          type: Option<Vec<String>>
      derives:
        - Debug
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, WriteResults(&out, tt.format, sampleResults))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestWriteResults_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteResults(&out, FormatJSON, sampleResults))
	assert.JSONEq(t, `[{"document":"person.ts","definitions":[{"name":"Person",
		"fields":[{"name":"name","type":"String"},{"name":"friends","type":"Option<Vec<String>>"}],
		"derives":["Debug"]}]}]`, out.String())

	out.Reset()
	require.NoError(t, WriteResults(&out, FormatJSON, nil))
	assert.Equal(t, "[]\n", out.String())
}

func TestWriteResults_UnknownFormat(t *testing.T) {
	assert.Error(t, WriteResults(&bytes.Buffer{}, "toml", sampleResults))
}

type closeRecorder struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteAndClose(t *testing.T) {
	t.Run("close error is returned", func(t *testing.T) {
		w := &closeRecorder{closeErr: assert.AnError}
		err := writeAndClose(w, "defs.json", FormatJSON, sampleResults)
		require.Error(t, err)
		assert.True(t, w.closed)
		assert.Equal(t, "failed to close defs.json", err.Error())
		assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
	})

	t.Run("write error wins", func(t *testing.T) {
		w := &closeRecorder{closeErr: assert.AnError}
		err := writeAndClose(w, "defs.json", "toml", sampleResults)
		require.Error(t, err)
		assert.True(t, w.closed)
		assert.Contains(t, err.Error(), "unsupported output format")
	})

	t.Run("success", func(t *testing.T) {
		w := &closeRecorder{}
		require.NoError(t, writeAndClose(w, "defs.json", FormatJSON, sampleResults))
		assert.True(t, w.closed)
		assert.Contains(t, w.String(), `"Person"`)
	})
}
