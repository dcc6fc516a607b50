package document

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lysyi3m/feedtree/app/feed"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadAll reads every *.yml and *.yaml document in the directory, keyed by
// document name. A missing directory yields no documents.
func (l *Loader) LoadAll() (map[string]*Document, error) {
	docs := make(map[string]*Document)

	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		return docs, nil
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}

	yamlFiles, err := filepath.Glob(filepath.Join(l.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	files = append(files, yamlFiles...)

	for _, file := range files {
		doc, err := LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if existing, ok := docs[doc.Name]; ok {
			return nil, fmt.Errorf("document %q defined twice (%s)", existing.Name, file)
		}
		docs[doc.Name] = doc

		slog.Debug("Document loaded", "document", doc.Name, "entries", len(doc.Entries), "formats", doc.Formats)
	}

	return docs, nil
}

func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(Name(path), data)
}

// Parse decodes a document, applies defaults and validates it.
func Parse(name string, data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	doc.Name = name
	if len(doc.Formats) == 0 {
		for _, format := range feed.Formats {
			doc.Formats = append(doc.Formats, string(format))
		}
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", name, err)
	}

	return &doc, nil
}

// Name derives a document name from its file name.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
