// Copyright (c) 2024 Neomantra Corp

package dbn

import "fmt"

// Diagnostic is a non-fatal observation surfaced during decoding: an
// enum byte that didn't match any documented value and was substituted
// with its default (spec.md section 4.3/7, "not an error"). Decoding
// continues; Diagnostic is purely informational.
type Diagnostic struct {
	Offset int64
	Field  string
	Got    byte
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("unrecognized byte 0x%02X for field %q at offset %d", d.Got, d.Field, d.Offset)
}

// DecodeRecord decodes a single record from b (header plus body, at least
// as long as the header declares) into its concrete *Msg type, wrapped as
// a Record. version is the enclosing stream's DBN version, needed only to
// pick InstrumentDefMsg's layout. An unrecognized rtype is returned as a
// MalformedHeader DecodeError; the scanner skips unknown records by
// checking IsKnownRType before calling DecodeRecord (spec.md section 4.4).
func DecodeRecord(b []byte, version uint8) (Record, []Diagnostic, error) {
	if len(b) < RHeaderSize {
		return nil, nil, unexpectedBytesError(-1, "record", len(b), RHeaderSize)
	}
	rtype := RType(b[1])
	switch {
	case rtype == RType_Mbo:
		r := &MboMsg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype == RType_Mbp0:
		r := &Mbp0Msg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype == RType_Mbp1:
		r := &Mbp1Msg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype == RType_Mbp10:
		r := &Mbp10Msg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype.IsCbboFamily():
		r := &CbboMsg{}
		diags, err := r.FillRaw(b)
		if err != nil {
			return nil, nil, err
		}
		r.Hdr.RType = rtype
		return r, diags, nil
	case rtype.IsCandle():
		r := &OhlcvMsg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype == RType_Status:
		r := &StatusMsg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype == RType_InstrumentDef:
		r := &InstrumentDefMsg{}
		diags, err := r.FillRaw(b, version)
		return r, diags, err
	case rtype == RType_Imbalance:
		r := &ImbalanceMsg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype == RType_Error:
		r := &ErrorMsg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype == RType_SymbolMapping:
		r := &SymbolMappingMsg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype == RType_System:
		r := &SystemMsg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	case rtype == RType_Statistics:
		r := &StatMsg{}
		diags, err := r.FillRaw(b)
		return r, diags, err
	default:
		return nil, nil, newDecodeError(ErrKindMalformedHeader, -1, "rtype", fmt.Errorf("unrecognized rtype 0x%02X", uint8(rtype)))
	}
}

// IsKnownRType reports whether rtype is one this codec can decode. The
// scanner uses this to implement "skip unknown rtypes, don't fail"
// (spec.md section 4.3/4.4).
func IsKnownRType(rtype RType) bool {
	switch {
	case rtype == RType_Mbo, rtype == RType_Mbp0, rtype == RType_Mbp1, rtype == RType_Mbp10,
		rtype == RType_Status, rtype == RType_InstrumentDef, rtype == RType_Imbalance,
		rtype == RType_Error, rtype == RType_SymbolMapping, rtype == RType_System,
		rtype == RType_Statistics:
		return true
	case rtype.IsCbboFamily(), rtype.IsCandle():
		return true
	default:
		return false
	}
}

// DecodeInto decodes a single record of known Go type R from b into dst,
// failing if the record's actual rtype isn't compatible with R's (spec.md
// section 4.3's "bitwise-copyable" generic decode path, grounded on the
// teacher's DbnScannerDecode[R, RP] generic). Candle types are considered
// compatible regardless of cadence, matching DecodeRecord's dispatch.
func DecodeInto[R any, RP RecordPtr[R]](b []byte, dst RP) ([]Diagnostic, error) {
	if len(b) < RHeaderSize {
		return nil, unexpectedBytesError(-1, "record", len(b), RHeaderSize)
	}
	got := RType(b[1])
	want := dst.RType()
	if _, isOhlcv := any(dst).(*OhlcvMsg); isOhlcv && got.IsCandle() {
		// A zero OhlcvMsg has no cadence yet; any candle rtype fits it.
		want = got
	}
	if !got.IsCompatibleWith(want) {
		return nil, unexpectedRTypeError(got, want)
	}
	return dst.FillRaw(b)
}

// EncodeRecord serializes rec to its wire form, setting rec's own
// Hdr.Length from the computed size (spec.md section 4.3, "Emission").
// It fails if rec isn't one of the record types this codec knows.
func EncodeRecord(rec Record) ([]byte, error) {
	switch r := rec.(type) {
	case *MboMsg:
		r.Hdr.Length = lengthUnitsFor(MboMsg_Size)
		b := make([]byte, MboMsg_Size)
		r.WriteRaw(b)
		return b, nil
	case *Mbp0Msg:
		r.Hdr.Length = lengthUnitsFor(Mbp0Msg_Size)
		b := make([]byte, Mbp0Msg_Size)
		r.WriteRaw(b)
		return b, nil
	case *Mbp1Msg:
		r.Hdr.Length = lengthUnitsFor(Mbp1Msg_Size)
		b := make([]byte, Mbp1Msg_Size)
		r.WriteRaw(b)
		return b, nil
	case *Mbp10Msg:
		r.Hdr.Length = lengthUnitsFor(Mbp10Msg_Size)
		b := make([]byte, Mbp10Msg_Size)
		r.WriteRaw(b)
		return b, nil
	case *CbboMsg:
		r.Hdr.Length = lengthUnitsFor(CbboMsg_Size)
		b := make([]byte, CbboMsg_Size)
		r.WriteRaw(b)
		return b, nil
	case *OhlcvMsg:
		r.Hdr.Length = lengthUnitsFor(OhlcvMsg_Size)
		b := make([]byte, OhlcvMsg_Size)
		r.WriteRaw(b)
		return b, nil
	case *StatusMsg:
		r.Hdr.Length = lengthUnitsFor(StatusMsg_Size)
		b := make([]byte, StatusMsg_Size)
		r.WriteRaw(b)
		return b, nil
	case *ImbalanceMsg:
		r.Hdr.Length = lengthUnitsFor(ImbalanceMsg_Size)
		b := make([]byte, ImbalanceMsg_Size)
		r.WriteRaw(b)
		return b, nil
	case *StatMsg:
		r.Hdr.Length = lengthUnitsFor(StatMsg_Size)
		b := make([]byte, StatMsg_Size)
		r.WriteRaw(b)
		return b, nil
	case *InstrumentDefMsg:
		size := r.RSize()
		r.Hdr.Length = lengthUnitsFor(size)
		b := make([]byte, size)
		r.WriteRaw(b)
		return b, nil
	case *ErrorMsg:
		size := ErrorMsgWireSize(r)
		r.Hdr.Length = lengthUnitsFor(size)
		b := make([]byte, size)
		r.WriteRaw(b)
		return b, nil
	case *SystemMsg:
		size := SystemMsgWireSize(r)
		r.Hdr.Length = lengthUnitsFor(size)
		b := make([]byte, size)
		r.WriteRaw(b)
		return b, nil
	case *SymbolMappingMsg:
		size := SymbolMappingWireSize(r)
		r.Hdr.Length = lengthUnitsFor(size)
		b := make([]byte, size)
		r.WriteRaw(b)
		return b, nil
	default:
		return nil, fmt.Errorf("dbn: EncodeRecord: unsupported record type %T", rec)
	}
}

// checkRecordOverrun reports ErrRecordOverrun if a parser's declared size
// exceeds the bytes actually available in the record, which would mean
// the parser read (or would read) past the record's declared boundary
// (spec.md section 7, "RecordOverrun").
func checkRecordOverrun(declaredSize, available int) error {
	if declaredSize > available {
		return newDecodeError(ErrKindRecordOverrun, -1, "", ErrRecordOverrun)
	}
	return nil
}
