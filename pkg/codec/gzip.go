package codec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

func init() {
	Register(NewGzipCodec())
}

// GzipCodec handles Unity's "Gzip" compression format.
type GzipCodec struct {
	BaseCodec
}

// NewGzipCodec creates a new gzip codec
func NewGzipCodec() *GzipCodec {
	return &GzipCodec{
		BaseCodec: BaseCodec{
			CodecName:   Gzip,
			CodecSuffix: ".gz",
			CodecTool:   "gzip",
		},
	}
}

// ToolArgs adds -k because gzip removes its input by default.
func (c *GzipCodec) ToolArgs(path string) []string {
	return []string{"-d", "-k", path}
}

// Compress compresses a stream using GZIP
func (c *GzipCodec) Compress(input io.Reader, output io.Writer) error {
	gw, err := gzip.NewWriterLevel(output, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("creating gzip writer: %w", err)
	}
	if _, err := io.Copy(gw, input); err != nil {
		gw.Close()
		return fmt.Errorf("compressing gzip stream: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("closing gzip writer: %w", err)
	}
	return nil
}

// Decompress decompresses a GZIP stream
func (c *GzipCodec) Decompress(input io.Reader, output io.Writer) error {
	gr, err := gzip.NewReader(input)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gr.Close()

	if _, err := io.Copy(output, gr); err != nil {
		return fmt.Errorf("decompressing gzip stream: %w", err)
	}
	return nil
}
