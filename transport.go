// Copyright (c) 2024 Neomantra Corp
//
// Transport layer, adapted from the teacher's compressed_io.go but
// extended to also sniff the zstd magic bytes on read, not just the
// filename suffix (spec.md section 4.1).

package dbn

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ZstdMagic is the 4-byte sequence that opens every zstd frame (spec.md
// section 4.1, Glossary "Streaming compressor").
var ZstdMagic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

// transportBufferSize is the buffered-reader size recommended for
// uncompressed files (spec.md section 9, "Buffered reads").
const transportBufferSize = 64 * 1024

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// OpenTransportReader opens filename (or stdin for "-") for reading,
// transparently unwrapping a zstd frame when either the path ends in
// ".zst"/".zstd" or the first 4 bytes are the zstd magic (spec.md
// section 4.1). The returned io.Closer releases the decompressor (if
// any) before the underlying file.
func OpenTransportReader(filename string) (io.Reader, io.Closer, error) {
	var base io.Reader
	var fileCloser io.Closer
	if filename != "-" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, nil, err
		}
		base, fileCloser = file, file
	} else {
		base, fileCloser = os.Stdin, nil
	}

	br := bufio.NewReaderSize(base, transportBufferSize)
	useZstd := strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd")
	if !useZstd {
		if peek, err := br.Peek(4); err == nil && bytes.Equal(peek, ZstdMagic[:]) {
			useZstd = true
		}
	}
	if !useZstd {
		return br, fileCloser, nil
	}

	zr, err := zstd.NewReader(br)
	if err != nil {
		if fileCloser != nil {
			fileCloser.Close()
		}
		return nil, nil, err
	}
	closer := closerFunc(func() error {
		zr.Close()
		if fileCloser != nil {
			return fileCloser.Close()
		}
		return nil
	})
	return zr, closer, nil
}

// MakeCompressedWriter returns an io.Writer for filename, or os.Stdout if
// filename is "-", plus a closing function to defer. If filename ends in
// ".zst"/".zstd", or useZstd is true, the writer zstd-compresses its
// output (matches the teacher's compressed_io.go of the same name).
func MakeCompressedWriter(filename string, useZstd bool) (io.Writer, func(), error) {
	var writer io.Writer
	var closer io.Closer
	fileCloser := func() {
		if closer != nil {
			closer.Close()
		}
	}
	if filename != "-" {
		file, err := os.Create(filename)
		if err != nil {
			return nil, nil, err
		}
		writer, closer = file, file
	} else {
		writer, closer = os.Stdout, nil
	}

	if useZstd || strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd") {
		zstdWriter, err := zstd.NewWriter(writer)
		if err != nil {
			fileCloser()
			return nil, nil, err
		}
		zstdCloser := func() {
			zstdWriter.Close()
			fileCloser()
		}
		return zstdWriter, zstdCloser, nil
	}
	return writer, fileCloser, nil
}

// ReadTransport is a forward-only byte source with logical position
// tracking, as consumed by the record codec and pull iterator (spec.md
// section 4.1/6).
type ReadTransport struct {
	r   *bufio.Reader
	pos int64
}

// NewReadTransport wraps r in a buffered ReadTransport.
func NewReadTransport(r io.Reader) *ReadTransport {
	return NewReadTransportSize(r, transportBufferSize)
}

// NewReadTransportSize wraps r in a buffered ReadTransport using bufSize,
// unless r is already a *bufio.Reader, in which case it is reused as-is.
func NewReadTransportSize(r io.Reader, bufSize int) *ReadTransport {
	if br, ok := r.(*bufio.Reader); ok {
		return &ReadTransport{r: br}
	}
	return &ReadTransport{r: bufio.NewReaderSize(r, bufSize)}
}

// Read implements io.Reader, tracking the logical position so ReadTransport
// can sit underneath readers (like ReadMetadata) that do their own partial
// reads instead of going through ReadExact/TryReadExact.
func (t *ReadTransport) Read(buf []byte) (int, error) {
	n, err := t.r.Read(buf)
	t.pos += int64(n)
	return n, err
}

// ReadExact fills buf completely or returns an UnexpectedEof DecodeError.
func (t *ReadTransport) ReadExact(buf []byte) error {
	n, err := io.ReadFull(t.r, buf)
	t.pos += int64(n)
	if err != nil {
		return newDecodeError(ErrKindUnexpectedEof, t.pos, "", err)
	}
	return nil
}

// TryReadExact fills buf completely and returns (true, nil); returns
// (false, nil) on a clean EOF with zero bytes consumed; returns an error
// for a short, non-empty read or any other I/O failure.
func (t *ReadTransport) TryReadExact(buf []byte) (bool, error) {
	n, err := io.ReadFull(t.r, buf)
	t.pos += int64(n)
	switch err {
	case nil:
		return true, nil
	case io.EOF:
		return false, nil
	case io.ErrUnexpectedEOF:
		return false, newDecodeError(ErrKindUnexpectedEof, t.pos, "", err)
	default:
		return false, newDecodeError(ErrKindIo, t.pos, "", err)
	}
}

// Skip advances n bytes without returning them to the caller.
func (t *ReadTransport) Skip(n int64) error {
	written, err := io.CopyN(io.Discard, t.r, n)
	t.pos += written
	if err != nil {
		return newDecodeError(ErrKindUnexpectedEof, t.pos, "", err)
	}
	return nil
}

// Position returns the transport's logical byte offset on the
// decompressed view (spec.md section 4.1).
func (t *ReadTransport) Position() int64 { return t.pos }

// WriteTransport is a byte sink with logical position tracking and an
// optional seek-back capability for the finalizing writer (spec.md
// section 4.1/4.6).
type WriteTransport struct {
	w      io.Writer
	seeker io.WriteSeeker
	pos    int64
}

// NewWriteTransport wraps w. If w also implements io.WriteSeeker, Seek
// becomes available; otherwise Seek returns ErrNotSeekable.
func NewWriteTransport(w io.Writer) *WriteTransport {
	t := &WriteTransport{w: w}
	if seeker, ok := w.(io.WriteSeeker); ok {
		t.seeker = seeker
	}
	return t
}

// Write implements io.Writer, tracking the logical position.
func (t *WriteTransport) Write(b []byte) (int, error) {
	n, err := t.w.Write(b)
	t.pos += int64(n)
	return n, err
}

// Position returns the transport's logical byte offset.
func (t *WriteTransport) Position() int64 { return t.pos }

// Seek repositions the sink to an absolute byte offset, for the
// finalizing writer's header rewrite. It fails with ErrNotSeekable if
// the underlying sink isn't seekable (spec.md section 5, "finalizing
// writer REQUIRES a seekable sink").
func (t *WriteTransport) Seek(absolute int64) error {
	if t.seeker == nil {
		return ErrNotSeekable
	}
	n, err := t.seeker.Seek(absolute, io.SeekStart)
	if err != nil {
		return newDecodeError(ErrKindIo, absolute, "", err)
	}
	t.pos = n
	return nil
}

// Flush flushes the underlying sink if it supports flushing.
func (t *WriteTransport) Flush() error {
	type flusher interface{ Flush() error }
	if f, ok := t.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close closes the underlying sink if it supports closing.
func (t *WriteTransport) Close() error {
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
