package codec

import (
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

func init() {
	Register(NewBrotliCodec())
}

// BrotliCodec handles Unity's default "Brotli" compression format.
type BrotliCodec struct {
	BaseCodec
}

// NewBrotliCodec creates a new brotli codec
func NewBrotliCodec() *BrotliCodec {
	return &BrotliCodec{
		BaseCodec: BaseCodec{
			CodecName:   Brotli,
			CodecSuffix: ".br",
			CodecTool:   "brotli",
		},
	}
}

// Compress compresses a stream with the best brotli quality
func (c *BrotliCodec) Compress(input io.Reader, output io.Writer) error {
	bw := brotli.NewWriterLevel(output, brotli.BestCompression)
	if _, err := io.Copy(bw, input); err != nil {
		bw.Close()
		return fmt.Errorf("compressing brotli stream: %w", err)
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("closing brotli writer: %w", err)
	}
	return nil
}

// Decompress decompresses a brotli stream
func (c *BrotliCodec) Decompress(input io.Reader, output io.Writer) error {
	if _, err := io.Copy(output, brotli.NewReader(input)); err != nil {
		return fmt.Errorf("decompressing brotli stream: %w", err)
	}
	return nil
}
