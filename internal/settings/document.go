// Package settings models the two engine configuration documents
// (mcp_agent.config.yaml and mcp_agent.secrets.yaml). Only a small set
// of recognized fields is editable; everything else in the documents is
// round-tripped untouched, so the client never needs the full schema.
package settings

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Search server choices recognized by the engine.
const (
	SearchBrave = "brave"
	SearchBocha = "bocha"
)

// ProviderNames lists the API providers the settings panel edits, in
// display order.
var ProviderNames = []string{"openai", "anthropic", "brave", "bocha"}

// Document is a parsed YAML document: a typed window over an opaque map.
// Mutations through the accessors touch only the addressed keys; Marshal
// writes the whole map back, unknown keys included.
type Document struct {
	root map[string]any
}

// Parse decodes YAML text into a Document. Empty text yields an empty
// document that can still be edited and marshalled.
func Parse(text string) (*Document, error) {
	root := map[string]any{}
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("parsing settings document: %w", err)
	}
	if root == nil {
		root = map[string]any{}
	}
	return &Document{root: root}, nil
}

// Marshal serializes the full document, preserved keys and all.
func (d *Document) Marshal() (string, error) {
	data, err := yaml.Marshal(d.root)
	if err != nil {
		return "", fmt.Errorf("marshalling settings document: %w", err)
	}
	return string(data), nil
}

// Keys returns the top-level key count, mostly for diagnostics display.
func (d *Document) Keys() int {
	return len(d.root)
}

func (d *Document) getString(path ...string) string {
	v, ok := d.get(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (d *Document) getBool(path ...string) bool {
	v, ok := d.get(path...)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func (d *Document) getInt(path ...string) int {
	v, ok := d.get(path...)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func (d *Document) get(path ...string) (any, bool) {
	var cur any = d.root
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// set writes a value at a nested key path, creating intermediate maps as
// needed. Existing sibling keys are never disturbed.
func (d *Document) set(value any, path ...string) {
	m := d.root
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// ============================================================================
// Recognized general-config fields
// ============================================================================

// ConfigFields is the editable subset of mcp_agent.config.yaml.
type ConfigFields struct {
	DefaultModel          string
	SearchServer          string // "brave" or "bocha"
	SegmentationEnabled   bool
	SegmentationThreshold int // characters
}

// Config extracts the recognized general-config fields.
func (d *Document) Config() ConfigFields {
	return ConfigFields{
		DefaultModel:          d.getString("default_model"),
		SearchServer:          d.getString("search_server"),
		SegmentationEnabled:   d.getBool("document_segmentation", "enabled"),
		SegmentationThreshold: d.getInt("document_segmentation", "size_threshold_chars"),
	}
}

// ApplyConfig overwrites the recognized general-config fields, leaving
// every other key in the document as parsed.
func (d *Document) ApplyConfig(f ConfigFields) {
	d.set(f.DefaultModel, "default_model")
	d.set(f.SearchServer, "search_server")
	d.set(f.SegmentationEnabled, "document_segmentation", "enabled")
	d.set(f.SegmentationThreshold, "document_segmentation", "size_threshold_chars")
}

// ============================================================================
// Recognized secrets fields
// ============================================================================

// Provider holds the per-provider credential pair.
type Provider struct {
	APIKey  string
	BaseURL string
}

// SecretsFields is the editable subset of mcp_agent.secrets.yaml.
type SecretsFields struct {
	Providers map[string]Provider
}

// Secrets extracts the recognized per-provider entries.
func (d *Document) Secrets() SecretsFields {
	providers := make(map[string]Provider, len(ProviderNames))
	for _, name := range ProviderNames {
		providers[name] = Provider{
			APIKey:  d.getString(name, "api_key"),
			BaseURL: d.getString(name, "base_url"),
		}
	}
	return SecretsFields{Providers: providers}
}

// ApplySecrets overwrites the recognized per-provider entries. Providers
// with a fully empty pair are skipped rather than written as empty maps,
// unless the document already carries an entry for them.
func (d *Document) ApplySecrets(f SecretsFields) {
	for _, name := range ProviderNames {
		p, ok := f.Providers[name]
		if !ok {
			continue
		}
		if p.APIKey == "" && p.BaseURL == "" {
			if _, exists := d.get(name); !exists {
				continue
			}
		}
		// Both fields are written, empty or not, so clearing either
		// one actually clears it in the document.
		d.set(p.APIKey, name, "api_key")
		d.set(p.BaseURL, name, "base_url")
	}
}
