package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zelig/zelig-backend/internal/domain"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warn(msg string, _ ...interface{}) { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Info(string, ...interface{})       {}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "kb.json", `[
		{"name": "Jemaa el-Fna", "description": "Place centrale animée.", "safety_tips": "Pickpockets le soir.", "city": "Marrakech"},
		{"name": "  ", "description": "ignored"},
		{"name": "Merzouga", "description": "Dunes de l'Erg Chebbi."}
	]`)

	got, err := Load(path, &recordingLogger{})
	require.NoError(t, err)

	want := []domain.Place{
		{Name: "Jemaa el-Fna", Description: "Place centrale animée.", SafetyTips: "Pickpockets le soir.", City: "Marrakech"},
		{Name: "Merzouga", Description: "Dunes de l'Erg Chebbi."},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "kb.yaml", `
- name: Essaouira
  description: Ville côtière venteuse.
  safety_tips: Attention aux courants.
  city: Essaouira
  category: plage
`)
	got, err := Load(path, &recordingLogger{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "plage", got[0].Category)
	assert.Equal(t, "Attention aux courants.", got[0].SafetyTips)
}

func TestLoad_MissingFileWarns(t *testing.T) {
	logger := &recordingLogger{}
	got, err := Load(filepath.Join(t.TempDir(), "absent.json"), logger)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Len(t, logger.warnings, 1)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeFile(t, "kb.json", `{"name": "not a list"}`), &recordingLogger{})
	assert.Error(t, err)

	_, err = Parse([]byte("[]"), ".toml")
	assert.Error(t, err)
}
