package loader

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlLoaderBackendImpl is the implementation of yamlLoaderBackend.
type yamlLoaderBackendImpl struct {
	strict bool
}

// yamlLoaderBackend is a loaderBackend implementation for YAML asset descriptions.
type yamlLoaderBackend interface {
	loaderBackend
}

var _ yamlLoaderBackend = &yamlLoaderBackendImpl{}

// newYAMLLoaderBackend creates a new YAML loader backend.
//
// Parameters:
//   - strict: reject fields the asset schema does not define
//
// Returns:
//   - yamlLoaderBackend: the loader backend for YAML asset descriptions
func newYAMLLoaderBackend(strict bool) yamlLoaderBackend {
	return &yamlLoaderBackendImpl{strict: strict}
}

func (b *yamlLoaderBackendImpl) Load(path string) (*assetDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return b.LoadReader(f)
}

func (b *yamlLoaderBackendImpl) LoadReader(r io.Reader) (*assetDoc, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(b.strict)

	var doc assetDoc
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty asset description")
		}
		return nil, fmt.Errorf("failed to decode asset description: %w", err)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("asset %q has no root node", doc.Name)
	}
	return &doc, nil
}
