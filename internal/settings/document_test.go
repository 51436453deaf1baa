package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/deepcode-dev/deepcode/internal/testutil"
)

func TestConfigExtractsRecognizedFields(t *testing.T) {
	doc, err := Parse(testutil.ConfigYAML)
	require.NoError(t, err)

	cfg := doc.Config()
	assert.Equal(t, "claude-sonnet-4", cfg.DefaultModel)
	assert.Equal(t, SearchBrave, cfg.SearchServer)
	assert.True(t, cfg.SegmentationEnabled)
	assert.Equal(t, 50000, cfg.SegmentationThreshold)
}

func TestApplyConfigPreservesUnknownKeys(t *testing.T) {
	doc, err := Parse(testutil.ConfigYAML)
	require.NoError(t, err)

	cfg := doc.Config()
	cfg.SearchServer = SearchBocha
	cfg.SegmentationThreshold = 80000
	doc.ApplyConfig(cfg)

	out, err := doc.Marshal()
	require.NoError(t, err)

	// Reparse and check both the edit and the untouched blocks.
	var root map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &root))

	assert.Equal(t, "bocha", root["search_server"])

	exec, ok := root["execution"].(map[string]any)
	require.True(t, ok, "execution block dropped")
	assert.Equal(t, 25, exec["max_iterations"])

	logger, ok := root["logger"].(map[string]any)
	require.True(t, ok, "logger block dropped")
	assert.Equal(t, "info", logger["level"])
}

func TestEmptyDocumentIsEditable(t *testing.T) {
	doc, err := Parse("")
	require.NoError(t, err)

	cfg := doc.Config()
	cfg.DefaultModel = "gpt-4o"
	doc.ApplyConfig(cfg)

	reparsed, err := Parse(mustMarshal(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", reparsed.Config().DefaultModel)
}

func TestSecretsSkipFullyEmptyProviders(t *testing.T) {
	doc, err := Parse("openai:\n  api_key: sk-1\n")
	require.NoError(t, err)

	secs := doc.Secrets()
	assert.Equal(t, "sk-1", secs.Providers["openai"].APIKey)
	assert.Empty(t, secs.Providers["anthropic"].APIKey)

	// Writing the untouched fields back must not materialize empty
	// provider blocks for anthropic/brave/bocha.
	doc.ApplySecrets(secs)
	reparsed, err := Parse(mustMarshal(t, doc))
	require.NoError(t, err)
	assert.Equal(t, 1, reparsed.Keys())
}

func TestSecretsPreserveUnrecognizedBlocks(t *testing.T) {
	doc, err := Parse(testutil.SecretsYAML)
	require.NoError(t, err)

	secs := doc.Secrets()
	p := secs.Providers["openai"]
	p.APIKey = "sk-2"
	secs.Providers["openai"] = p
	doc.ApplySecrets(secs)

	reparsed, err := Parse(mustMarshal(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "sk-2", reparsed.Secrets().Providers["openai"].APIKey)

	var root map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(mustMarshal(t, reparsed)), &root))
	internal, ok := root["internal"].(map[string]any)
	require.True(t, ok, "internal block dropped")
	assert.Equal(t, "keep-me", internal["signing_key"])
}

func TestApplySecretsClearsEmptiedFields(t *testing.T) {
	doc, err := Parse(testutil.SecretsYAML)
	require.NoError(t, err)

	secs := doc.Secrets()
	p := secs.Providers["openai"]
	require.NotEmpty(t, p.BaseURL)
	p.BaseURL = ""
	secs.Providers["openai"] = p
	doc.ApplySecrets(secs)

	reparsed, err := Parse(mustMarshal(t, doc))
	require.NoError(t, err)
	got := reparsed.Secrets().Providers["openai"]
	assert.Equal(t, "sk-test-0001", got.APIKey)
	assert.Empty(t, got.BaseURL, "cleared base_url survived the round trip")
}

func mustMarshal(t *testing.T, doc *Document) string {
	t.Helper()
	out, err := doc.Marshal()
	require.NoError(t, err)
	return out
}
