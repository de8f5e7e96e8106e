package loader

import (
	"io"
)

// loaderBackend defines the generic interface for decoding asset descriptions from files or streams.
// Concrete implementations (e.g., yamlLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Load decodes the asset description at the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *assetDoc: the decoded asset description
	//   - error: error if reading or decoding fails
	Load(path string) (*assetDoc, error)

	// LoadReader decodes an asset description from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing asset data
	//
	// Returns:
	//   - *assetDoc: the decoded asset description
	//   - error: error if decoding fails
	LoadReader(r io.Reader) (*assetDoc, error)
}
