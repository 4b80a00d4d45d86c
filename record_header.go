// Copyright (c) 2024 Neomantra Corp

package dbn

import "encoding/binary"

// RHeader is the 16-byte common record header present on every record
// (spec.md section 3).
type RHeader struct {
	Length       uint8  `json:"len,omitempty"`     // Record length in 4-byte units, including this header.
	RType        RType  `json:"rtype"`             // The record's type tag.
	PublisherID  uint16 `json:"publisher_id"`      // Dataset/venue, assigned by Databento.
	InstrumentID uint32 `json:"instrument_id"`     // The numeric instrument ID.
	TsEvent      int64  `json:"ts_event"`          // Matching-engine-received timestamp, ns since epoch.
}

// RHeaderSize is the fixed byte size of RHeader.
const RHeaderSize = 16

// ByteSize returns the record's total length in bytes (header + body),
// recovered from the length-in-4-byte-units field (spec.md section 3,
// Glossary "length_units").
func (h *RHeader) ByteSize() int {
	return int(h.Length) * 4
}

// FillRHeaderRaw decodes a 16-byte common header from b.
func FillRHeaderRaw(b []byte, h *RHeader) error {
	if len(b) < RHeaderSize {
		return unexpectedBytesError(-1, "record_header", len(b), RHeaderSize)
	}
	h.Length = b[0]
	h.RType = RType(b[1])
	h.PublisherID = binary.LittleEndian.Uint16(b[2:4])
	h.InstrumentID = binary.LittleEndian.Uint32(b[4:8])
	h.TsEvent = int64(binary.LittleEndian.Uint64(b[8:16]))
	return nil
}

// PutRHeaderRaw encodes h's 16 bytes into b.
func PutRHeaderRaw(b []byte, h *RHeader) {
	b[0] = h.Length
	b[1] = uint8(h.RType)
	binary.LittleEndian.PutUint16(b[2:4], h.PublisherID)
	binary.LittleEndian.PutUint32(b[4:8], h.InstrumentID)
	binary.LittleEndian.PutUint64(b[8:16], uint64(h.TsEvent))
}

// lengthUnitsFor returns the length_units value for a record whose total
// byte size is totalBytes, which must already be a multiple of 4
// (spec.md section 4.3, "Emission").
func lengthUnitsFor(totalBytes int) uint8 {
	return uint8(totalBytes / 4)
}
