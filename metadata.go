// Copyright (c) 2024 Neomantra Corp
//
// Adapted from DataBento's DBN:
//   https://github.com/databento/dbn/blob/main/rust/dbn/src/metadata.rs
//

package dbn

import (
	"encoding/binary"
	"io"
)

// Magic is the 3-byte prefix that opens every DBN stream.
var Magic = [3]byte{'D', 'B', 'N'}

// MinSupportedVersion and MaxSupportedVersion bound the versions this
// codec will read or write (spec.md section 1, "no DBN v1 upgrading").
const (
	MinSupportedVersion uint8 = 2
	MaxSupportedVersion uint8 = 3
)

// WriteSymbolWidth is the on-disk symbol field width this codec always
// uses when writing metadata (spec.md section 3, "71 for v3 written
// output"). Reads carry through whatever width the source file declares.
const WriteSymbolWidth uint16 = 71

// metadataReservedPad is the reserved byte count between ts_out and
// schema_def_len for v>=2 (spec.md section 4.2).
const metadataReservedPad = 53

// SymbolMapping is one (raw, mapped, start_date, end_date) quadruple from
// the metadata's mappings section. Dates are day-granularity YYYYMMDD
// integers (spec.md section 3).
type SymbolMapping struct {
	RawSymbol    string `json:"raw_symbol"`
	MappedSymbol string `json:"mapped_symbol"`
	StartDate    uint32 `json:"start_date"`
	EndDate      uint32 `json:"end_date"`
}

// Metadata is the decoded header of a DBN stream. It is immutable after
// a read; the finalizing writer mutates only StartTs/EndTs/Limit, and
// only in its own in-memory copy before a header rewrite (spec.md
// section 3/4.6).
type Metadata struct {
	Version     uint8           `json:"version"`
	Dataset     string          `json:"dataset"`
	Schema      Schema          `json:"schema"`
	StartTs     int64           `json:"start_ts"`
	EndTs       int64           `json:"end_ts"` // 0 or UndefinedTimestamp means absent.
	Limit       uint64          `json:"limit"`  // 0 means absent.
	StypeIn     SType           `json:"stype_in"`
	StypeOut    SType           `json:"stype_out"`
	TsOut       bool            `json:"ts_out"`
	SymbolWidth uint16          `json:"symbol_width"` // Observed on read; WriteSymbolWidth on write.
	Symbols     []string        `json:"symbols"`
	Partial     []string        `json:"partial"`
	NotFound    []string        `json:"not_found"`
	Mappings    []SymbolMapping `json:"mappings"`
}

const datasetCstrLen = 16

// ReadMetadata reads and decodes the magic, version, and metadata body
// from r, per spec.md section 4.2. It fails with ErrInvalidMagic,
// ErrUnsupportedVersion, ErrMalformedHeader, or ErrUnsupportedSchema as
// appropriate.
func ReadMetadata(r io.Reader) (*Metadata, error) {
	var prefix [8]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, newDecodeError(ErrKindUnexpectedEof, 0, "magic+version+metadata_length", err)
	}
	if prefix[0] != Magic[0] || prefix[1] != Magic[1] || prefix[2] != Magic[2] {
		return nil, newDecodeError(ErrKindInvalidMagic, 0, "magic", ErrInvalidMagic)
	}
	version := prefix[3]
	if version < MinSupportedVersion || version > MaxSupportedVersion {
		return nil, newDecodeError(ErrKindUnsupportedVersion, 3, "version", ErrUnsupportedVersion)
	}
	metadataLength := binary.LittleEndian.Uint32(prefix[4:8])

	body := make([]byte, metadataLength)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, newDecodeError(ErrKindUnexpectedEof, 8, "metadata_body", err)
	}
	if len(body) < datasetCstrLen+2+8+8+8+1+1+1+2+metadataReservedPad+4 {
		return nil, newDecodeError(ErrKindMalformedHeader, 8, "metadata_body", ErrMalformedHeader)
	}

	m := &Metadata{Version: version}
	pos := 0

	m.Dataset = TrimNullBytes(body[pos : pos+datasetCstrLen])
	pos += datasetCstrLen

	m.Schema = Schema(binary.LittleEndian.Uint16(body[pos : pos+2]))
	pos += 2

	m.StartTs = int64(binary.LittleEndian.Uint64(body[pos : pos+8]))
	pos += 8
	m.EndTs = int64(binary.LittleEndian.Uint64(body[pos : pos+8]))
	pos += 8
	m.Limit = binary.LittleEndian.Uint64(body[pos : pos+8])
	pos += 8

	m.StypeIn = SType(body[pos])
	pos++
	m.StypeOut = SType(body[pos])
	pos++
	m.TsOut = body[pos] != 0
	pos++

	m.SymbolWidth = binary.LittleEndian.Uint16(body[pos : pos+2])
	pos += 2
	pos += metadataReservedPad

	schemaDefLen := binary.LittleEndian.Uint32(body[pos : pos+4])
	pos += 4
	if schemaDefLen != 0 {
		return nil, newDecodeError(ErrKindUnsupportedSchema, int64(8+pos-4), "schema_def_len", ErrUnsupportedSchema)
	}

	var err error
	m.Symbols, pos, err = decodeStringArray(body, pos, int(m.SymbolWidth))
	if err != nil {
		return nil, err
	}
	m.Partial, pos, err = decodeStringArray(body, pos, int(m.SymbolWidth))
	if err != nil {
		return nil, err
	}
	m.NotFound, pos, err = decodeStringArray(body, pos, int(m.SymbolWidth))
	if err != nil {
		return nil, err
	}
	m.Mappings, pos, err = decodeMappings(body, pos, int(m.SymbolWidth))
	if err != nil {
		return nil, err
	}
	_ = pos
	return m, nil
}

func decodeStringArray(body []byte, pos int, width int) ([]string, int, error) {
	if pos+4 > len(body) {
		return nil, pos, unexpectedBytesError(int64(pos), "string_array_count", len(body)-pos, 4)
	}
	count := int(binary.LittleEndian.Uint32(body[pos : pos+4]))
	pos += 4
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if pos+width > len(body) {
			return nil, pos, unexpectedBytesError(int64(pos), "string_array_entry", len(body)-pos, width)
		}
		out = append(out, TrimNullBytes(body[pos:pos+width]))
		pos += width
	}
	return out, pos, nil
}

func decodeMappings(body []byte, pos int, width int) ([]SymbolMapping, int, error) {
	if pos+4 > len(body) {
		return nil, pos, unexpectedBytesError(int64(pos), "mappings_count", len(body)-pos, 4)
	}
	mappingsCount := int(binary.LittleEndian.Uint32(body[pos : pos+4]))
	pos += 4
	out := make([]SymbolMapping, 0, mappingsCount)
	for i := 0; i < mappingsCount; i++ {
		if pos+width > len(body) {
			return nil, pos, unexpectedBytesError(int64(pos), "mapping_raw_symbol", len(body)-pos, width)
		}
		raw := TrimNullBytes(body[pos : pos+width])
		pos += width
		if pos+4 > len(body) {
			return nil, pos, unexpectedBytesError(int64(pos), "intervals_count", len(body)-pos, 4)
		}
		intervalsCount := int(binary.LittleEndian.Uint32(body[pos : pos+4]))
		pos += 4
		var mapping SymbolMapping
		for j := 0; j < intervalsCount; j++ {
			if pos+8+width > len(body) {
				return nil, pos, unexpectedBytesError(int64(pos), "mapping_interval", len(body)-pos, 8+width)
			}
			start := binary.LittleEndian.Uint32(body[pos : pos+4])
			end := binary.LittleEndian.Uint32(body[pos+4 : pos+8])
			mappedSym := TrimNullBytes(body[pos+8 : pos+8+width])
			pos += 8 + width
			if j == 0 {
				mapping = SymbolMapping{RawSymbol: raw, MappedSymbol: mappedSym, StartDate: start, EndDate: end}
			}
			// Per spec.md section 4.2, only the first interval is retained.
		}
		out = append(out, mapping)
	}
	return out, pos, nil
}

// WriteMetadata encodes m to w, per spec.md section 4.2. It always writes
// m.Version's symbol width as WriteSymbolWidth and exactly one interval
// per mapping; m.Version must be in [MinSupportedVersion, MaxSupportedVersion].
func WriteMetadata(w io.Writer, m *Metadata) error {
	if m.Version < MinSupportedVersion || m.Version > MaxSupportedVersion {
		return newDecodeError(ErrKindUnsupportedVersion, -1, "version", ErrUnsupportedVersion)
	}
	width := int(WriteSymbolWidth)
	body := encodeMetadataBody(m, width)

	var prefix [8]byte
	prefix[0], prefix[1], prefix[2] = Magic[0], Magic[1], Magic[2]
	prefix[3] = m.Version
	binary.LittleEndian.PutUint32(prefix[4:8], uint32(len(body)))

	if _, err := w.Write(prefix[:]); err != nil {
		return newDecodeError(ErrKindIo, 0, "magic+version+metadata_length", err)
	}
	if _, err := w.Write(body); err != nil {
		return newDecodeError(ErrKindIo, 8, "metadata_body", err)
	}
	return nil
}

// MetadataByteSize returns the total encoded size (prefix + body) of m as
// WriteMetadata would emit it, without writing anything. The finalizing
// writer uses this to confirm a header rewrite won't change length
// (spec.md section 4.6 invariant).
func MetadataByteSize(m *Metadata) int {
	return 8 + len(encodeMetadataBody(m, int(WriteSymbolWidth)))
}

func encodeMetadataBody(m *Metadata, width int) []byte {
	fixedSize := datasetCstrLen + 2 + 8 + 8 + 8 + 1 + 1 + 1 + 2 + metadataReservedPad + 4
	size := fixedSize
	size += 4 + len(m.Symbols)*width
	size += 4 + len(m.Partial)*width
	size += 4 + len(m.NotFound)*width
	size += 4
	for range m.Mappings {
		size += width + 4 + (4 + 4 + width)
	}

	body := make([]byte, size)
	pos := 0
	copy(body[pos:pos+datasetCstrLen], m.Dataset)
	pos += datasetCstrLen

	binary.LittleEndian.PutUint16(body[pos:pos+2], uint16(m.Schema))
	pos += 2
	binary.LittleEndian.PutUint64(body[pos:pos+8], uint64(m.StartTs))
	pos += 8
	binary.LittleEndian.PutUint64(body[pos:pos+8], uint64(m.EndTs))
	pos += 8
	binary.LittleEndian.PutUint64(body[pos:pos+8], m.Limit)
	pos += 8

	body[pos] = uint8(m.StypeIn)
	pos++
	body[pos] = uint8(m.StypeOut)
	pos++
	if m.TsOut {
		body[pos] = 1
	}
	pos++

	binary.LittleEndian.PutUint16(body[pos:pos+2], uint16(width))
	pos += 2
	pos += metadataReservedPad // left as zero.

	binary.LittleEndian.PutUint32(body[pos:pos+4], 0) // schema_def_len
	pos += 4

	pos = encodeStringArray(body, pos, m.Symbols, width)
	pos = encodeStringArray(body, pos, m.Partial, width)
	pos = encodeStringArray(body, pos, m.NotFound, width)

	binary.LittleEndian.PutUint32(body[pos:pos+4], uint32(len(m.Mappings)))
	pos += 4
	for _, mapping := range m.Mappings {
		copy(body[pos:pos+width], mapping.RawSymbol)
		pos += width
		binary.LittleEndian.PutUint32(body[pos:pos+4], 1) // intervals_count
		pos += 4
		binary.LittleEndian.PutUint32(body[pos:pos+4], mapping.StartDate)
		pos += 4
		binary.LittleEndian.PutUint32(body[pos:pos+4], mapping.EndDate)
		pos += 4
		copy(body[pos:pos+width], mapping.MappedSymbol)
		pos += width
	}
	return body
}

func encodeStringArray(body []byte, pos int, symbols []string, width int) int {
	binary.LittleEndian.PutUint32(body[pos:pos+4], uint32(len(symbols)))
	pos += 4
	for _, s := range symbols {
		copy(body[pos:pos+width], s)
		pos += width
	}
	return pos
}

// HasEndTs reports whether m.EndTs is present (spec.md section 3: 0 and
// all-ones both encode "absent").
func (m *Metadata) HasEndTs() bool {
	return m.EndTs != 0 && m.EndTs != UndefinedTimestamp
}

// HasLimit reports whether m.Limit is present (0 encodes "absent").
func (m *Metadata) HasLimit() bool {
	return m.Limit != 0
}

// HasStypeIn reports whether m.StypeIn is present (0xFF encodes "absent").
func (m *Metadata) HasStypeIn() bool {
	return m.StypeIn != SType_Absent
}
