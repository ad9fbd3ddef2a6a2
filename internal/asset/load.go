package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile loads the asset at path, choosing the decoder by extension.
// Every failure wraps ErrAssetLoad.
func LoadFile(path string) (*RawAsset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		return LoadGLTF(path)
	case ".obj":
		return LoadOBJ(path)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q (use .glb, .gltf or .obj)", ErrAssetLoad, ext)
	}
}

// LoadAndNormalize is LoadFile followed by Normalize.
func LoadAndNormalize(path string, characteristicSize float64) (*Model, error) {
	raw, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Normalize(raw, characteristicSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
