package bridge

import (
	"fmt"
	"os"
	"path/filepath"
)

// Names of the two engine configuration documents, kept at the project
// root exactly where the desktop shell resolved them.
const (
	ConfigFileName  = "mcp_agent.config.yaml"
	SecretsFileName = "mcp_agent.secrets.yaml"
)

// FileStore serves the bridge operations the desktop shell handled
// locally: reading and writing the two YAML documents and plain files.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir. An empty dir resolves
// to the current working directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		dir = cwd
	}
	return &FileStore{root: dir}, nil
}

// Root returns the directory the documents live in.
func (f *FileStore) Root() string {
	return f.root
}

// ReadConfig returns the raw text of mcp_agent.config.yaml.
func (f *FileStore) ReadConfig() (string, error) {
	return f.readDocument(ConfigFileName)
}

// WriteConfig replaces mcp_agent.config.yaml with content.
func (f *FileStore) WriteConfig(content string) error {
	return f.writeDocument(ConfigFileName, content)
}

// ReadSecrets returns the raw text of mcp_agent.secrets.yaml.
func (f *FileStore) ReadSecrets() (string, error) {
	return f.readDocument(SecretsFileName)
}

// WriteSecrets replaces mcp_agent.secrets.yaml with content.
func (f *FileStore) WriteSecrets(content string) error {
	return f.writeDocument(SecretsFileName, content)
}

// SaveLocal writes downloaded bytes to a path on the local machine.
// Relative paths are resolved against the store root.
func (f *FileStore) SaveLocal(path string, data []byte) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.root, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	return nil
}

func (f *FileStore) readDocument(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(f.root, name))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

func (f *FileStore) writeDocument(name, content string) error {
	if err := os.WriteFile(filepath.Join(f.root, name), []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
