// Copyright (c) 2024 Neomantra Corp
//
// File-level compression (spec.md section 4.7).

package dbn

import (
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// CompressResult summarizes a CompressFile run.
type CompressResult struct {
	OriginalSize   int64
	CompressedSize int64
	Ratio          float64 // 1 - compressed/original.
	SpaceSaved     int64
}

// CompressFile reads srcPath (transparently decompressing it first if
// it's already zstd-framed) and writes a freshly zstd-compressed copy to
// dstPath at the given encoder level, preserving metadata and every
// record exactly. Known record types are piped through the record codec
// (decode then re-encode); unknown rtypes are copied through verbatim,
// so no data is lost even for record types this codec doesn't decode.
// If deleteSource is true, srcPath is removed after a successful close
// (spec.md section 4.7).
func CompressFile(srcPath, dstPath string, level int, deleteSource bool) (CompressResult, error) {
	var result CompressResult

	srcReader, srcCloser, err := OpenTransportReader(srcPath)
	if err != nil {
		return result, err
	}
	defer func() {
		if srcCloser != nil {
			srcCloser.Close()
		}
	}()

	dstFile, err := os.Create(dstPath)
	if err != nil {
		return result, err
	}
	zw, err := zstd.NewWriter(dstFile, zstd.WithEncoderLevel(zstd.EncoderLevel(level)))
	if err != nil {
		dstFile.Close()
		return result, err
	}

	if err := copyDbnStream(srcReader, zw); err != nil {
		zw.Close()
		dstFile.Close()
		return result, err
	}
	if err := zw.Close(); err != nil {
		dstFile.Close()
		return result, err
	}
	if err := dstFile.Close(); err != nil {
		return result, err
	}

	result.OriginalSize = fileSize(srcPath)
	result.CompressedSize = fileSize(dstPath)
	if result.OriginalSize > 0 {
		result.Ratio = 1 - float64(result.CompressedSize)/float64(result.OriginalSize)
	}
	result.SpaceSaved = result.OriginalSize - result.CompressedSize

	if deleteSource && srcPath != "-" {
		if err := os.Remove(srcPath); err != nil {
			return result, err
		}
	}
	return result, nil
}

func copyDbnStream(src io.Reader, dst io.Writer) error {
	scanner := NewDbnScanner(src)
	meta, err := scanner.Metadata()
	if err != nil {
		return err
	}
	if err := WriteMetadata(dst, meta); err != nil {
		return err
	}

	for scanner.Next() {
		raw := scanner.GetLastRecord()
		rtype := RType(raw[1])
		if IsKnownRType(rtype) {
			// Diagnostics are discarded here: recompression is a lossless
			// passthrough, and any substituted enum byte round-trips
			// through EncodeRecord unchanged, so there is nothing for a
			// caller of copyDbnStream to act on.
			rec, _, err := DecodeRecord(raw, meta.Version)
			if err != nil {
				return err
			}
			encoded, err := EncodeRecord(rec)
			if err != nil {
				return err
			}
			if _, err := dst.Write(encoded); err != nil {
				return err
			}
			continue
		}
		if _, err := dst.Write(raw); err != nil {
			return err
		}
	}
	if err := scanner.Error(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func fileSize(path string) int64 {
	if path == "-" {
		return 0
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
