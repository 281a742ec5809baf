package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
display_name: Ann
name_color: "#aa66cc"
scale: 0.95
voice: woman
default_outfit: formal
eye_line: 0.12
mutations:
  tan: [casual, swimsuit]
poses:
  a:
    image_width: 832
    image_height: 1248
    center_width: 416
    center_height: 100
    facing: right
    excludes:
      glasses: [casual]
`

func TestParse(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		r, err := Parse([]byte(sampleYAML))
		require.NoError(t, err)
		assert.Equal(t, "Ann", r.DisplayName)
		assert.Equal(t, "#aa66cc", r.NameColor)
		assert.Equal(t, 0.95, r.Scale)
		assert.Equal(t, "woman", r.Voice)
		assert.Equal(t, "formal", r.DefaultOutfit)
		assert.Equal(t, 0.12, r.EyeLine)
		assert.Equal(t, []string{"casual", "swimsuit"}, r.Mutations["tan"])

		pose, ok := r.Poses["a"]
		require.True(t, ok)
		assert.Equal(t, 832, pose.ImageWidth)
		assert.Equal(t, "right", pose.Facing)
		assert.True(t, pose.Excluded("glasses", "casual"))
		assert.False(t, pose.Excluded("glasses", "formal"))
		assert.False(t, pose.Excluded("hat", "casual"))
	})

	t.Run("empty document", func(t *testing.T) {
		r, err := Parse(nil)
		require.NoError(t, err)
		assert.Zero(t, *r)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := Parse([]byte("display_nmae: Ann\n"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		_, err := Parse([]byte("poses: ["))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file is a normal absence", func(t *testing.T) {
		r, err := Load(filepath.Join(t.TempDir(), FileName))
		require.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("reads the record from disk", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, FileName)
		require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

		r, err := Load(path)
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, "Ann", r.DisplayName)
	})
}

func TestVoiceTable(t *testing.T) {
	t.Run("resolves built-in names", func(t *testing.T) {
		table := NewVoiceTable(nil)
		pitch, err := table.Resolve("girl")
		require.NoError(t, err)
		assert.Equal(t, "c5", pitch)
	})

	t.Run("overrides extend the table", func(t *testing.T) {
		table := NewVoiceTable(map[string]string{"robot": "c2", "girl": "d5"})
		pitch, err := table.Resolve("robot")
		require.NoError(t, err)
		assert.Equal(t, "c2", pitch)
		pitch, err = table.Resolve("girl")
		require.NoError(t, err)
		assert.Equal(t, "d5", pitch)
	})

	t.Run("unknown voice is an error", func(t *testing.T) {
		_, err := NewVoiceTable(nil).Resolve("baritone")
		assert.ErrorContains(t, err, "known voice")
	})
}
