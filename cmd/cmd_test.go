package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against a private database. Flag values
// persist on the shared command tree between calls, so every call passes
// the flags it depends on.
func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--db", db, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := rootCmd.Execute()
	return out.String(), err
}

func testDB(t *testing.T) string {
	t.Helper()
	t.Setenv("SENGOKU_STORE", "sqlite")
	t.Setenv("SENGOKU_QUESTIONS_DIR", "")
	t.Setenv("SENGOKU_REMOTE_CONFIG_URL", "")
	return filepath.Join(t.TempDir(), "sengoku.db")
}

func TestProgressCommands(t *testing.T) {
	db := testDB(t)

	out, err := execute(t, db, "debug", "set-progress", "--tier", "small_daimyo", "--count", "37")
	require.NoError(t, err)
	assert.Contains(t, out, "Small Daimyo: 37/100")

	out, err = execute(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "37/100")
	assert.Contains(t, out, "3/10")
	assert.Contains(t, out, "locked")

	_, err = execute(t, db, "reset", "--yes=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err = execute(t, db, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress reset.")

	out, err = execute(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "0/100")
}

func TestDebugUnknownTier(t *testing.T) {
	db := testDB(t)
	_, err := execute(t, db, "debug", "set-progress", "--tier", "shogun", "--count", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tier "shogun"`)
}

func TestPremiumCommands(t *testing.T) {
	db := testDB(t)

	out, err := execute(t, db, "premium")
	require.NoError(t, err)
	assert.Contains(t, out, "Premium is not active.")
	assert.Contains(t, out, "sengoku.premium.monthly")

	out, err = execute(t, db, "premium", "restore")
	require.NoError(t, err)
	assert.Contains(t, out, "No premium purchase found to restore.")

	out, err = execute(t, db, "premium", "subscribe", "sengoku.premium.yearly")
	require.NoError(t, err)
	assert.Contains(t, out, "Premium is active.")

	out, err = execute(t, db, "premium", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Premium is active.")
}

func TestQuestionsValidateBundled(t *testing.T) {
	db := testDB(t)
	out, err := execute(t, db, "questions", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "questions_small_daimyo.json")
	assert.NotContains(t, out, "✗")
}

func TestLLMCommandsEmpty(t *testing.T) {
	db := testDB(t)

	out, err := execute(t, db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")

	out, err = execute(t, db, "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	_, err = execute(t, db, "llm", "view", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event 42 not found")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, testDB(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "sengoku (devel)\n", out)
}
