// Package codec provides the compression formats a Unity web build can ship
// its payload files in, with in-process decoding and the matching external
// tool invocation.
package codec

import (
	"fmt"
	"io"
	"sort"

	rerrors "github.com/provide-io/unity-responsive/pkg/responsive/errors"
)

// Format names accepted in configuration.
const (
	Brotli = "brotli"
	Gzip   = "gzip"
)

// Codec describes one compression format.
type Codec interface {
	// Name returns the configuration name (e.g. "brotli")
	Name() string

	// Suffix returns the file suffix the format adds (e.g. ".br")
	Suffix() string

	// Tool returns the default external decompression binary
	Tool() string

	// ToolArgs returns the arguments that make Tool decompress path next to
	// itself while keeping path on disk.
	ToolArgs(path string) []string

	// Compress compresses a stream
	Compress(input io.Reader, output io.Writer) error

	// Decompress decompresses a stream
	Decompress(input io.Reader, output io.Writer) error
}

// BaseCodec provides the descriptive half of a Codec.
type BaseCodec struct {
	CodecName   string
	CodecSuffix string
	CodecTool   string
}

func (c *BaseCodec) Name() string {
	return c.CodecName
}

func (c *BaseCodec) Suffix() string {
	return c.CodecSuffix
}

func (c *BaseCodec) Tool() string {
	return c.CodecTool
}

func (c *BaseCodec) ToolArgs(path string) []string {
	return []string{"-d", path}
}

// Registry maps format names to implementations
var Registry = make(map[string]Codec)

// Register registers a codec implementation
func Register(c Codec) {
	Registry[c.Name()] = c
}

// Get retrieves a codec by name
func Get(name string) (Codec, error) {
	c, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", rerrors.ErrUnknownCodec, name)
	}
	return c, nil
}

// ForSuffix finds the codec that produces files ending in suffix.
func ForSuffix(suffix string) (Codec, bool) {
	for _, c := range Registry {
		if c.Suffix() == suffix {
			return c, true
		}
	}
	return nil, false
}

// Names returns the registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
