// Copyright (c) 2024 Neomantra Corp

package dbn

// NullVisitor is a Visitor whose methods all return nil, for embedding
// in callers that only care about a handful of record types (spec.md
// section 2, matching the teacher's null_visitor.go).
type NullVisitor struct{}

func (NullVisitor) OnMbo(*MboMsg) error                         { return nil }
func (NullVisitor) OnMbp0(*Mbp0Msg) error                        { return nil }
func (NullVisitor) OnMbp1(*Mbp1Msg) error                        { return nil }
func (NullVisitor) OnMbp10(*Mbp10Msg) error                      { return nil }
func (NullVisitor) OnCbbo(*CbboMsg) error                        { return nil }
func (NullVisitor) OnOhlcv(*OhlcvMsg) error                      { return nil }
func (NullVisitor) OnStatus(*StatusMsg) error                    { return nil }
func (NullVisitor) OnInstrumentDef(*InstrumentDefMsg) error      { return nil }
func (NullVisitor) OnImbalance(*ImbalanceMsg) error               { return nil }
func (NullVisitor) OnStatMsg(*StatMsg) error                     { return nil }
func (NullVisitor) OnErrorMsg(*ErrorMsg) error                    { return nil }
func (NullVisitor) OnSymbolMappingMsg(*SymbolMappingMsg) error    { return nil }
func (NullVisitor) OnSystemMsg(*SystemMsg) error                  { return nil }
func (NullVisitor) OnStreamEnd() error                            { return nil }

var _ Visitor = NullVisitor{}
