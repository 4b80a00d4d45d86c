// Copyright (c) 2024 Neomantra Corp
//
// Pull-iterator streaming reader, adapted from the teacher's
// dbn_scanner.go (spec.md section 4.4).

package dbn

import (
	"io"
)

// DefaultDecodeBufferSize is the buffered-reader size under the scanner.
const DefaultDecodeBufferSize = 16 * 1024

// DefaultScratchBufferSize is the scanner's initial scratch buffer,
// comfortably larger than every fixed-size record type; it grows on
// demand for oversized or unknown records (see Next).
const DefaultScratchBufferSize = 512

// DbnScanner is a lazy, single-pass pull iterator over a DBN stream
// (spec.md section 2, "Pull-iterator streaming reader"). It reads through
// a ReadTransport so every short read is reported with the transport's
// logical byte offset (spec.md section 4.1/6).
type DbnScanner struct {
	transport   *ReadTransport
	metadata    *Metadata
	lastError   error
	lastRecord  []byte
	lastSize    int
	diagnostics []Diagnostic
}

// NewDbnScanner creates a DbnScanner reading from sourceReader.
func NewDbnScanner(sourceReader io.Reader) *DbnScanner {
	return &DbnScanner{
		transport:  NewReadTransportSize(sourceReader, DefaultDecodeBufferSize),
		lastRecord: make([]byte, DefaultScratchBufferSize),
	}
}

// Metadata returns the stream's metadata, reading it on first call.
func (s *DbnScanner) Metadata() (*Metadata, error) {
	if s.metadata != nil {
		return s.metadata, nil
	}
	err := s.readMetadata()
	return s.metadata, err
}

// Error returns the last error from Next, which may be io.EOF.
func (s *DbnScanner) Error() error {
	return s.lastError
}

// GetLastHeader returns the common header of the last record read.
func (s *DbnScanner) GetLastHeader() (RHeader, error) {
	var hdr RHeader
	err := FillRHeaderRaw(s.lastRecord[0:RHeaderSize], &hdr)
	return hdr, err
}

// GetLastRecord returns the raw bytes of the last record read, sized to
// GetLastSize.
func (s *DbnScanner) GetLastRecord() []byte {
	return s.lastRecord[:s.lastSize]
}

// GetLastSize returns the byte size of the last record read.
func (s *DbnScanner) GetLastSize() int {
	return s.lastSize
}

// Diagnostics returns every non-fatal enum-byte substitution observed so
// far (spec.md section 4.3/7): each entry records a field that held an
// unrecognized byte and was filled with its documented default instead.
func (s *DbnScanner) Diagnostics() []Diagnostic {
	return s.diagnostics
}

func (s *DbnScanner) readMetadata() error {
	if s.metadata != nil {
		return nil
	}
	m, err := ReadMetadata(s.transport)
	if err != nil {
		s.lastError = err
		s.lastSize = 0
		return err
	}
	s.lastError = nil
	s.lastSize = 0
	s.metadata = m
	return nil
}

// Next reads the next raw record into the scanner's scratch buffer,
// regardless of whether its rtype is recognized. It returns false on EOF
// or any read error; callers inspect Error() to distinguish the two.
func (s *DbnScanner) Next() bool {
	if s.metadata == nil {
		if err := s.readMetadata(); err != nil {
			return false
		}
	}

	var lenBuf [1]byte
	ok, err := s.transport.TryReadExact(lenBuf[:])
	if err != nil {
		s.lastError = err
		s.lastSize = 0
		return false
	}
	if !ok {
		s.lastError = io.EOF
		s.lastSize = 0
		return false
	}
	recordLen := lenBuf[0]
	mustRead := 4 * int(recordLen)
	if mustRead < RHeaderSize {
		s.lastError = newDecodeError(ErrKindMalformedHeader, s.transport.Position(), "length_units", ErrMalformedHeader)
		s.lastSize = 0
		return false
	}
	if mustRead > len(s.lastRecord) {
		s.lastRecord = make([]byte, mustRead)
	}
	s.lastRecord[0] = recordLen

	if err := s.transport.ReadExact(s.lastRecord[1:mustRead]); err != nil {
		s.lastError = err
		s.lastSize = 0
		return false
	}
	s.lastError = nil
	s.lastSize = mustRead
	return true
}

// NextRecord advances past any unknown rtypes and decodes the next known
// record, returning (nil, nil) at clean EOF (spec.md section 4.4,
// "transparently skipping unknown types").
func (s *DbnScanner) NextRecord() (Record, error) {
	for s.Next() {
		rtype := RType(s.lastRecord[1])
		if !IsKnownRType(rtype) {
			continue
		}
		version := uint8(0)
		if s.metadata != nil {
			version = s.metadata.Version
		}
		rec, diags, err := DecodeRecord(s.GetLastRecord(), version)
		s.diagnostics = append(s.diagnostics, diags...)
		return rec, err
	}
	if err := s.Error(); err != nil && err != io.EOF {
		return nil, err
	}
	return nil, nil
}

// DecodeLastRecord decodes the scanner's current raw record (as left by
// Next) if its rtype is known, accumulating any diagnostics into
// Diagnostics. It is a no-op for unknown rtypes, letting a caller that
// iterates with Next (rather than NextRecord) still observe diagnostics
// without decoding unknown records itself.
func (s *DbnScanner) DecodeLastRecord() (Record, error) {
	if s.lastSize < RHeaderSize {
		return nil, ErrNoRecord
	}
	rtype := RType(s.lastRecord[1])
	if !IsKnownRType(rtype) {
		return nil, nil
	}
	version := uint8(0)
	if s.metadata != nil {
		version = s.metadata.Version
	}
	rec, diags, err := DecodeRecord(s.GetLastRecord(), version)
	s.diagnostics = append(s.diagnostics, diags...)
	return rec, err
}

// DbnScannerDecode decodes the scanner's current record as a typed R,
// failing if its rtype isn't compatible with R's (spec.md section 4.4).
// It delegates the compatibility check and fill to DecodeInto.
func DbnScannerDecode[R any, RP RecordPtr[R]](s *DbnScanner) (*R, error) {
	if s.lastSize <= RHeaderSize {
		return nil, ErrNoRecord
	}
	if err := checkRecordOverrun(s.lastSize, len(s.lastRecord)); err != nil {
		return nil, err
	}
	var rp RP = new(R)
	diags, err := DecodeInto[R, RP](s.lastRecord[0:s.lastSize], rp)
	if err != nil {
		return nil, err
	}
	s.diagnostics = append(s.diagnostics, diags...)
	return rp, nil
}

// ReadDBNToSlice reads an entire DBN stream, decoding every record of
// type R into a slice. Records with unknown rtypes are skipped. Example:
//
//	records, metadata, err := dbn.ReadDBNToSlice[dbn.Mbp0Msg](fileReader)
func ReadDBNToSlice[R any, RP RecordPtr[R]](reader io.Reader) ([]R, *Metadata, error) {
	records := make([]R, 0)
	scanner := NewDbnScanner(reader)
	for scanner.Next() {
		if !IsKnownRType(RType(scanner.lastRecord[1])) {
			continue
		}
		r, err := DbnScannerDecode[R, RP](scanner)
		if err != nil {
			return records, scanner.metadata, err
		}
		records = append(records, *r)
	}
	err := scanner.Error()
	if err == io.EOF {
		err = nil
	}
	return records, scanner.metadata, err
}
