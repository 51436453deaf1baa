package bridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deepcode-dev/deepcode/internal/testutil"
)

func TestFileStoreReadsSeededDocuments(t *testing.T) {
	dir := testutil.TempProject(t, map[string]string{
		ConfigFileName:  testutil.ConfigYAML,
		SecretsFileName: testutil.SecretsYAML,
	})
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	cfg, err := store.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if cfg != testutil.ConfigYAML {
		t.Errorf("config text: got %q", cfg)
	}

	secs, err := store.ReadSecrets()
	if err != nil {
		t.Fatalf("ReadSecrets failed: %v", err)
	}
	if secs != testutil.SecretsYAML {
		t.Errorf("secrets text: got %q", secs)
	}
}

func TestFileStoreConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.WriteConfig("default_model: test\n"); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	text, err := store.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if text != "default_model: test\n" {
		t.Errorf("config text: got %q", text)
	}

	// The document lands at the root under its canonical name.
	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Errorf("config file missing: %v", err)
	}
}

func TestSaveLocalResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.SaveLocal(filepath.Join("downloads", "main.py"), []byte("print()")); err != nil {
		t.Fatalf("SaveLocal failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "downloads", "main.py"))
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(data) != "print()" {
		t.Errorf("saved content: got %q", data)
	}
}
