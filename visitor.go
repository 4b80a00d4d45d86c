// Copyright (c) 2024 Neomantra Corp

package dbn

// Visitor receives decoded records from DbnScanner.Visit, one method per
// record family (spec.md section 2). Neither Visit nor DbnScanner calls
// OnStreamEnd.
type Visitor interface {
	OnMbo(*MboMsg) error
	OnMbp0(*Mbp0Msg) error
	OnMbp1(*Mbp1Msg) error
	OnMbp10(*Mbp10Msg) error
	OnCbbo(*CbboMsg) error
	OnOhlcv(*OhlcvMsg) error
	OnStatus(*StatusMsg) error
	OnInstrumentDef(*InstrumentDefMsg) error
	OnImbalance(*ImbalanceMsg) error
	OnStatMsg(*StatMsg) error
	OnErrorMsg(*ErrorMsg) error
	OnSymbolMappingMsg(*SymbolMappingMsg) error
	OnSystemMsg(*SystemMsg) error
	OnStreamEnd() error
}

// Visit decodes the scanner's current record and dispatches it to the
// matching Visitor method. Unknown rtypes are the caller's
// responsibility to skip via NextRecord/Next; Visit itself only fails on
// a genuine decode error.
func (s *DbnScanner) Visit(visitor Visitor) error {
	if s.lastSize <= RHeaderSize {
		return ErrNoRecord
	}
	version := uint8(0)
	if s.metadata != nil {
		version = s.metadata.Version
	}
	record, diags, err := DecodeRecord(s.GetLastRecord(), version)
	s.diagnostics = append(s.diagnostics, diags...)
	if err != nil {
		return err
	}
	switch rec := record.(type) {
	case *MboMsg:
		return visitor.OnMbo(rec)
	case *Mbp0Msg:
		return visitor.OnMbp0(rec)
	case *Mbp1Msg:
		return visitor.OnMbp1(rec)
	case *Mbp10Msg:
		return visitor.OnMbp10(rec)
	case *CbboMsg:
		return visitor.OnCbbo(rec)
	case *OhlcvMsg:
		return visitor.OnOhlcv(rec)
	case *StatusMsg:
		return visitor.OnStatus(rec)
	case *InstrumentDefMsg:
		return visitor.OnInstrumentDef(rec)
	case *ImbalanceMsg:
		return visitor.OnImbalance(rec)
	case *StatMsg:
		return visitor.OnStatMsg(rec)
	case *ErrorMsg:
		return visitor.OnErrorMsg(rec)
	case *SymbolMappingMsg:
		return visitor.OnSymbolMappingMsg(rec)
	case *SystemMsg:
		return visitor.OnSystemMsg(rec)
	default:
		return newDecodeError(ErrKindMalformedHeader, -1, "rtype", ErrMalformedHeader)
	}
}
