package tsport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/models"
	"github.com/toyz/tsport/internal/utils"
)

const personSource = `
interface Person {
  name: string;
  age: number;
  friends?: string[];
}
`

func TestTranslate(t *testing.T) {
	descriptors, err := Translate(personSource)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "Person", descriptors[0].Name)
	assert.Equal(t, []string{"Debug"}, descriptors[0].Derives)
}

func TestTranslate_Options(t *testing.T) {
	source := "interface A { b: B; } /** derive: Eq; **/"

	descriptors, err := Translate(source, WithSerde(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"Debug", "serde::Serialize", "serde::Deserialize", "Eq"}, descriptors[0].Derives)

	_, err = Translate(source, WithStrict(true), WithFilename("inline.ts"))
	assert.Equal(t, errors.UnresolvedReferenceErrorCode, errors.CodeOf(err))

	_, err = Translate("interface A { b: string | number; }", WithFilename("inline.ts"))
	require.Error(t, err)
	assert.Equal(t, "inline.ts", errors.LocationOf(err).File)
}

func TestTranslateDefinitions(t *testing.T) {
	definitions, err := TranslateDefinitions("interface point { x: number; y: number; } /** derive: Copy; **/")
	require.NoError(t, err)
	assert.Equal(t, []models.Definition{{
		Name:    "Point",
		Fields:  []models.DefinitionField{{Name: "x", Type: "f64"}, {Name: "y", Type: "f64"}},
		Derives: []string{"Debug", "Copy"},
	}}, definitions)

	definitions, err = TranslateDefinitions("interface {")
	assert.Error(t, err)
	assert.Nil(t, definitions)
}

func TestImport(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "types"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "types", "person.ts"), []byte(personSource), 0o644))

	descriptors, err := Import("types/person.ts", WithRoot(root))
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, []string{"name", "age", "friends"}, descriptors[0].FieldNames())

	doc, err := ImportDocument(filepath.Join(root, "types", "person.ts"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "types", "person.ts"), doc.Name)
	assert.Len(t, doc.Interfaces, 1)
}

func TestImport_SharedReader(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.ts"), []byte("interface A {}"), 0o644))

	reader := utils.NewSourceReader()
	for i := 0; i < 2; i++ {
		_, err := Import("a.ts", WithRoot(root), WithReader(reader))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, reader.CachedFiles())
}

func TestImport_Errors(t *testing.T) {
	root := t.TempDir()

	t.Run("empty path", func(t *testing.T) {
		_, err := Import("", WithRoot(root))
		require.Error(t, err)
		assert.Equal(t, "no source file provided", err.Error())
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Import("missing.ts", WithRoot(root))
		require.Error(t, err)
		assert.Equal(t, "failed to read "+filepath.Join(root, "missing.ts"), err.Error())
		assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
	})

	t.Run("errors carry the full path", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "bad.ts"), []byte("interface Bad { a: 1; }"), 0o644))
		_, err := Import("bad.ts", WithRoot(root))
		require.Error(t, err)
		assert.Equal(t, filepath.Join(root, "bad.ts"), errors.LocationOf(err).File)
	})
}

func TestResolvePath(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, filepath.Join(root, "a", "b.ts"), ResolvePath(root, "a/b.ts"))

	abs := filepath.Join(root, "x", "..", "c.ts")
	assert.Equal(t, filepath.Join(root, "c.ts"), ResolvePath("/elsewhere", abs))
	assert.True(t, filepath.IsAbs(ResolvePath("", "d.ts")))
}
