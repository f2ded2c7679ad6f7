package responsive

import (
	"fmt"

	"github.com/provide-io/unity-responsive/internal/buildpath"
	"github.com/provide-io/unity-responsive/pkg/codec"
)

// Asset identifies one of the three large Unity payload files.
type Asset int

const (
	AssetData Asset = iota
	AssetFramework
	AssetCode
)

// Assets lists the payload files in processing order.
var Assets = []Asset{AssetData, AssetFramework, AssetCode}

func (a Asset) String() string {
	switch a {
	case AssetData:
		return "data"
	case AssetFramework:
		return "framework"
	case AssetCode:
		return "code"
	default:
		return fmt.Sprintf("asset(%d)", int(a))
	}
}

// fileSuffix is what follows the product name in the uncompressed file name.
func (a Asset) fileSuffix() string {
	switch a {
	case AssetData:
		return ".data"
	case AssetFramework:
		return ".framework.js"
	default:
		return ".wasm"
	}
}

// File returns the asset's path relative to the build directory, with ext
// appended ("" for the uncompressed variant).
func (a Asset) File(l buildpath.Layout, ext string) string {
	return l.BuildFile(a.fileSuffix() + ext)
}

// FileExtensionState records which variant of each asset the page references:
// "" for the uncompressed file or the codec suffix for the compressed one.
type FileExtensionState struct {
	Data      string
	Framework string
	Code      string
}

// Get returns the extension for a.
func (s FileExtensionState) Get(a Asset) string {
	switch a {
	case AssetData:
		return s.Data
	case AssetFramework:
		return s.Framework
	default:
		return s.Code
	}
}

// With returns a copy of s with a's extension set to ext.
func (s FileExtensionState) With(a Asset, ext string) FileExtensionState {
	switch a {
	case AssetData:
		s.Data = ext
	case AssetFramework:
		s.Framework = ext
	default:
		s.Code = ext
	}
	return s
}

// Map returns the state keyed by asset name.
func (s FileExtensionState) Map() map[string]string {
	m := make(map[string]string, len(Assets))
	for _, a := range Assets {
		m[a.String()] = s.Get(a)
	}
	return m
}

func (s FileExtensionState) String() string {
	return fmt.Sprintf("data%s, framework%s, wasm%s", s.Data, s.Framework, s.Code)
}

// DetectExtensions marks every asset whose compressed variant exists.
func DetectExtensions(l buildpath.Layout, c codec.Codec) FileExtensionState {
	var state FileExtensionState
	for _, a := range Assets {
		if l.Exists(a.File(l, c.Suffix())) {
			state = state.With(a, c.Suffix())
		}
	}
	return state
}

// ResolveExtensions clears the extension of every asset whose uncompressed
// variant exists, so the page prefers uncompressed files.
func ResolveExtensions(l buildpath.Layout, state FileExtensionState) FileExtensionState {
	for _, a := range Assets {
		if l.Exists(a.File(l, "")) {
			state = state.With(a, "")
		}
	}
	return state
}
