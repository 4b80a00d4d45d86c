// Copyright (c) 2024 Neomantra Corp
//
// Finalizing and bulk streaming writers (spec.md section 4.6).

package dbn

import "io"

// recordTsEvent extracts ts_event from any record's common header, for
// the finalizing writer's min/max tracking.
func recordTsEvent(rec Record) int64 {
	switch r := rec.(type) {
	case *MboMsg:
		return r.Hdr.TsEvent
	case *Mbp0Msg:
		return r.Hdr.TsEvent
	case *Mbp1Msg:
		return r.Hdr.TsEvent
	case *Mbp10Msg:
		return r.Hdr.TsEvent
	case *CbboMsg:
		return r.Hdr.TsEvent
	case *OhlcvMsg:
		return r.Hdr.TsEvent
	case *StatusMsg:
		return r.Hdr.TsEvent
	case *InstrumentDefMsg:
		return r.Hdr.TsEvent
	case *ImbalanceMsg:
		return r.Hdr.TsEvent
	case *StatMsg:
		return r.Hdr.TsEvent
	case *ErrorMsg:
		return r.Hdr.TsEvent
	case *SystemMsg:
		return r.Hdr.TsEvent
	case *SymbolMappingMsg:
		return r.Hdr.TsEvent
	default:
		return 0
	}
}

// DefaultFlushInterval is a suggested record count for the flushInterval
// argument of NewFinalizingWriter; the writer does not apply it itself.
const DefaultFlushInterval = 1000

// FinalizingWriter accepts records online and rewrites the stream's
// header on Close with the true start_ts/end_ts/limit, which aren't
// known until every record has been seen (spec.md section 4.6).
//
// It REQUIRES a seekable sink; see BulkWriter for non-seekable sinks
// whose start_ts/end_ts/limit are already known up front (spec.md
// section 5).
type FinalizingWriter struct {
	transport     *WriteTransport
	metadata      Metadata
	flushInterval int
	closed        bool

	minTs          int64
	maxTs          int64
	count          uint64
	sawRecord      bool
	lastFlushCount uint64
}

// NewFinalizingWriter opens w for writing, constructing meta's
// placeholder header (start_ts=0, end_ts=0, limit=0) immediately.
// flushInterval <= 0 disables auto-flush.
func NewFinalizingWriter(w io.Writer, meta Metadata, flushInterval int) (*FinalizingWriter, error) {
	fw := &FinalizingWriter{
		transport:     NewWriteTransport(w),
		metadata:      meta,
		flushInterval: flushInterval,
	}
	fw.metadata.StartTs = 0
	fw.metadata.EndTs = 0
	fw.metadata.Limit = 0
	if err := WriteMetadata(fw.transport, &fw.metadata); err != nil {
		return nil, err
	}
	return fw, nil
}

// WriteRecord encodes rec and appends it to the stream, tracking the
// running min/max ts_event and record count. It fails with
// ErrWriterClosed once Close has run.
func (fw *FinalizingWriter) WriteRecord(rec Record) error {
	if fw.closed {
		return newDecodeError(ErrKindWriterClosed, -1, "", ErrWriterClosed)
	}
	b, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	if _, err := fw.transport.Write(b); err != nil {
		return newDecodeError(ErrKindIo, fw.transport.Position(), "", err)
	}

	ts := recordTsEvent(rec)
	if !fw.sawRecord {
		fw.minTs, fw.maxTs = ts, ts
		fw.sawRecord = true
	} else {
		if ts < fw.minTs {
			fw.minTs = ts
		}
		if ts > fw.maxTs {
			fw.maxTs = ts
		}
	}
	fw.count++

	if fw.flushInterval > 0 && fw.count-fw.lastFlushCount >= uint64(fw.flushInterval) {
		if err := fw.transport.Flush(); err != nil {
			return newDecodeError(ErrKindIo, fw.transport.Position(), "", err)
		}
		fw.lastFlushCount = fw.count
	}
	return nil
}

// Close flushes pending output, then rewrites the header in place with
// the observed start_ts/end_ts/limit (spec.md section 4.6). The rewrite
// cannot change metadata_length, since symbols/partial/not_found/mappings
// were fixed at construction; the seek-back-to-P guard exists only as
// defense in depth.
func (fw *FinalizingWriter) Close() error {
	if fw.closed {
		return nil
	}
	fw.closed = true

	if err := fw.transport.Flush(); err != nil {
		return newDecodeError(ErrKindIo, fw.transport.Position(), "", err)
	}
	finalPos := fw.transport.Position()

	if err := fw.transport.Seek(0); err != nil {
		return err
	}

	final := fw.metadata
	if fw.sawRecord {
		final.StartTs = fw.minTs
		final.EndTs = fw.maxTs
		final.Limit = fw.count
	} else {
		final.StartTs = 0
		final.EndTs = 0
		final.Limit = 0
	}

	rewriteErr := WriteMetadata(fw.transport, &final)
	if fw.transport.Position() < finalPos {
		if err := fw.transport.Seek(finalPos); err != nil && rewriteErr == nil {
			rewriteErr = err
		}
	}
	if closeErr := fw.transport.Close(); closeErr != nil && rewriteErr == nil {
		rewriteErr = closeErr
	}
	return rewriteErr
}

// BulkWriter writes a header once (with caller-supplied final
// start_ts/end_ts/limit already baked in) followed by records, with no
// rewrite on Close. Use this for non-seekable sinks, e.g. a pipe or a
// zstd-compressed stream (spec.md section 5).
type BulkWriter struct {
	w      io.Writer
	closed bool
}

// NewBulkWriter writes meta to w immediately and returns a BulkWriter
// for appending records.
func NewBulkWriter(w io.Writer, meta Metadata) (*BulkWriter, error) {
	if err := WriteMetadata(w, &meta); err != nil {
		return nil, err
	}
	return &BulkWriter{w: w}, nil
}

// WriteRecord encodes rec and appends it to the stream.
func (bw *BulkWriter) WriteRecord(rec Record) error {
	if bw.closed {
		return newDecodeError(ErrKindWriterClosed, -1, "", ErrWriterClosed)
	}
	b, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	if _, err := bw.w.Write(b); err != nil {
		return newDecodeError(ErrKindIo, -1, "", err)
	}
	return nil
}

// Close flushes and closes the sink if it supports those operations.
func (bw *BulkWriter) Close() error {
	if bw.closed {
		return nil
	}
	bw.closed = true
	type flusher interface{ Flush() error }
	if f, ok := bw.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	if c, ok := bw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
