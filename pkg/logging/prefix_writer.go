package logging

import (
	"bytes"
	"io"
)

// PrefixWriter prepends a fixed prefix to every complete line written through it.
// Partial lines stay buffered until their newline arrives or Flush is called.
type PrefixWriter struct {
	prefix  []byte
	dst     io.Writer
	pending bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		dst:    w,
	}
}

// Write implements io.Writer.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.pending.Write(p)

	for {
		data := pw.pending.Bytes()
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		if err := pw.emit(data[:idx+1]); err != nil {
			return 0, err
		}
		pw.pending.Next(idx + 1)
	}

	return len(p), nil
}

// Flush writes any buffered partial line, prefixed, without a trailing newline.
func (pw *PrefixWriter) Flush() error {
	if pw.pending.Len() == 0 {
		return nil
	}
	err := pw.emit(pw.pending.Bytes())
	pw.pending.Reset()
	return err
}

func (pw *PrefixWriter) emit(line []byte) error {
	if _, err := pw.dst.Write(pw.prefix); err != nil {
		return err
	}
	_, err := pw.dst.Write(line)
	return err
}
