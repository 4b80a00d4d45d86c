// Copyright (c) 2024 Neomantra Corp
//
// Adapted from DataBento's DBN:
//   https://github.com/databento/dbn/blob/main/rust/dbn/src/enums.rs
//

package dbn

// Side is the side that initiated an event.
type Side uint8

const (
	// Side_Ask is a sell order or sell aggressor in a trade.
	Side_Ask Side = 'A'
	// Side_Bid is a buy order or a buy aggressor in a trade.
	Side_Bid Side = 'B'
	// Side_None means no side was specified by the original source.
	Side_None Side = 'N'
)

// String renders the enum value, falling back to "none" (as for Side_None)
// for anything undocumented. Unknown bytes are not an error (spec.md section 4.3/7).
func (s Side) String() string {
	switch s {
	case Side_Ask:
		return "ask"
	case Side_Bid:
		return "bid"
	default:
		return "none"
	}
}

// validateSide substitutes Side_None, the documented default, for any
// byte that isn't a recognized side letter, returning a non-nil
// Diagnostic when it does (spec.md section 4.3/7: "not an error").
func validateSide(raw byte, offset int64) (Side, *Diagnostic) {
	switch Side(raw) {
	case Side_Ask, Side_Bid, Side_None:
		return Side(raw), nil
	default:
		return Side_None, &Diagnostic{Offset: offset, Field: "side", Got: raw}
	}
}

// Action is the event action that produced a record.
type Action uint8

const (
	// Action_Modify: an existing order was modified.
	Action_Modify Action = 'M'
	// Action_Trade: a trade executed.
	Action_Trade Action = 'T'
	// Action_Fill: an existing order was filled.
	Action_Fill Action = 'F'
	// Action_Cancel: an order was cancelled.
	Action_Cancel Action = 'C'
	// Action_Add: a new order was added.
	Action_Add Action = 'A'
	// Action_Clear: reset the book; clear all orders for an instrument.
	Action_Clear Action = 'R'
	// Action_None: reserved; never appears on the wire. An unrecognized
	// action byte is substituted with Action_Trade instead, not this
	// value (spec.md section 4.3/7).
	Action_None Action = 0x00
)

// String renders the action as a lowercase word. An unrecognized byte
// never reaches this method directly: FillRaw substitutes Action_Trade
// for it before the field is ever set (spec.md section 4.3/7), so the
// default case below only covers Action_None.
func (a Action) String() string {
	switch a {
	case Action_Modify:
		return "modify"
	case Action_Trade:
		return "trade"
	case Action_Fill:
		return "fill"
	case Action_Cancel:
		return "cancel"
	case Action_Add:
		return "add"
	case Action_Clear:
		return "clear"
	default:
		return "none"
	}
}

// validateAction substitutes Action_Trade, the documented default, for
// any byte that isn't a recognized action letter, returning a non-nil
// Diagnostic when it does (spec.md section 4.3/7: "not an error").
func validateAction(raw byte, offset int64) (Action, *Diagnostic) {
	switch Action(raw) {
	case Action_Modify, Action_Trade, Action_Fill, Action_Cancel, Action_Add, Action_Clear:
		return Action(raw), nil
	default:
		return Action_Trade, &Diagnostic{Offset: offset, Field: "action", Got: raw}
	}
}

// InstrumentClass identifies the kind of tradable instrument.
type InstrumentClass uint8

const (
	InstrumentClass_Bond         InstrumentClass = 'B'
	InstrumentClass_Call         InstrumentClass = 'C'
	InstrumentClass_Future       InstrumentClass = 'F'
	InstrumentClass_Stock        InstrumentClass = 'K'
	InstrumentClass_MixedSpread  InstrumentClass = 'M'
	InstrumentClass_Put          InstrumentClass = 'P'
	InstrumentClass_FutureSpread InstrumentClass = 'S'
	InstrumentClass_OptionSpread InstrumentClass = 'T'
	InstrumentClass_FxSpot       InstrumentClass = 'X'
	// InstrumentClass_Other is the documented fallback for an unrecognized
	// instrument class byte.
	InstrumentClass_Other InstrumentClass = '?'
)

// String renders the instrument class as a lowercase word.
func (c InstrumentClass) String() string {
	switch c {
	case InstrumentClass_Bond:
		return "bond"
	case InstrumentClass_Call:
		return "call"
	case InstrumentClass_Future:
		return "future"
	case InstrumentClass_Stock:
		return "stock"
	case InstrumentClass_MixedSpread:
		return "mixed_spread"
	case InstrumentClass_Put:
		return "put"
	case InstrumentClass_FutureSpread:
		return "future_spread"
	case InstrumentClass_OptionSpread:
		return "option_spread"
	case InstrumentClass_FxSpot:
		return "fx_spot"
	default:
		return "other"
	}
}

// validateInstrumentClass substitutes InstrumentClass_Other, the
// documented default, for any byte that isn't a recognized instrument
// class letter, returning a non-nil Diagnostic when it does (spec.md
// section 4.3/7: "not an error").
func validateInstrumentClass(raw byte, offset int64) (InstrumentClass, *Diagnostic) {
	switch InstrumentClass(raw) {
	case InstrumentClass_Bond, InstrumentClass_Call, InstrumentClass_Future, InstrumentClass_Stock,
		InstrumentClass_MixedSpread, InstrumentClass_Put, InstrumentClass_FutureSpread,
		InstrumentClass_OptionSpread, InstrumentClass_FxSpot, InstrumentClass_Other:
		return InstrumentClass(raw), nil
	default:
		return InstrumentClass_Other, &Diagnostic{Offset: offset, Field: "instrument_class", Got: raw}
	}
}

// MatchAlgorithm identifies the venue's matching algorithm.
type MatchAlgorithm uint8

const (
	MatchAlgorithm_Fifo                MatchAlgorithm = 'F'
	MatchAlgorithm_Configurable        MatchAlgorithm = 'K'
	MatchAlgorithm_ProRata             MatchAlgorithm = 'C'
	MatchAlgorithm_FifoLmm             MatchAlgorithm = 'T'
	MatchAlgorithm_ThresholdProRata    MatchAlgorithm = 'O'
	MatchAlgorithm_FifoTopLmm          MatchAlgorithm = 'S'
	MatchAlgorithm_ThresholdProRataLmm MatchAlgorithm = 'Q'
	MatchAlgorithm_EurodollarFutures   MatchAlgorithm = 'Y'
	MatchAlgorithm_Undefined           MatchAlgorithm = ' '
)

// UserDefinedInstrument flags whether an instrument definition is user-defined.
type UserDefinedInstrument uint8

const (
	UserDefinedInstrument_No  UserDefinedInstrument = 'N'
	UserDefinedInstrument_Yes UserDefinedInstrument = 'Y'
)

// SType is a symbology type, selecting how a symbol string is interpreted.
type SType uint8

const (
	SType_InstrumentId SType = 0
	SType_RawSymbol    SType = 1
	SType_Smart        SType = 2
	SType_Continuous   SType = 3
	SType_Parent       SType = 4
	SType_Nasdaq       SType = 5
	SType_Cms          SType = 6
	// SType_Absent is the sentinel for an unset stype_in/stype_out slot.
	SType_Absent SType = 0xFF
)

// RType is the 1-byte type tag in every record's common header, selecting
// which body layout follows.
type RType uint8

const (
	RType_Mbp0            RType = 0x00 // Trades schema (market-by-price, depth 0).
	RType_Mbp1            RType = 0x01 // Market-by-price, depth 1 (also TBBO).
	RType_Mbp10           RType = 0x0A // Market-by-price, depth 10.
	RType_OhlcvDeprecated RType = 0x11 // Deprecated unspecified-cadence OHLCV.
	RType_Ohlcv1S         RType = 0x20 // OHLCV, 1-second cadence.
	RType_Ohlcv1M         RType = 0x21 // OHLCV, 1-minute cadence.
	RType_Ohlcv1H         RType = 0x22 // OHLCV, hourly cadence.
	RType_Ohlcv1D         RType = 0x23 // OHLCV, daily cadence (UTC date).
	RType_OhlcvEod        RType = 0x24 // OHLCV, daily cadence (end of session).
	RType_Status          RType = 0x12 // Exchange status record.
	RType_InstrumentDef   RType = 0x13 // Instrument definition record.
	RType_Imbalance       RType = 0x14 // Order imbalance record.
	RType_Error           RType = 0x15 // Error from gateway.
	RType_SymbolMapping   RType = 0x16 // Symbol mapping record.
	RType_System          RType = 0x17 // Non-error gateway message; heartbeats.
	RType_Statistics      RType = 0x18 // Publisher-calculated statistics record.
	RType_Cbbo            RType = 0x02 // Consolidated MBP-1 (cross-venue BBO).
	RType_Cbbo1S          RType = 0x03 // Consolidated BBO, 1-second snapshot.
	RType_Cbbo1M          RType = 0x04 // Consolidated BBO, 1-minute snapshot.
	RType_Tcbbo           RType = 0x05 // Trade with consolidated BBO.
	RType_Bbo1S           RType = 0x06 // Single-venue BBO, 1-second snapshot.
	RType_Bbo1M           RType = 0x07 // Single-venue BBO, 1-minute snapshot.
	RType_Mbo             RType = 0xA0 // Market by order record.
	RType_Unknown         RType = 0xFF // Go-only: unknown or invalid record type.
)

// IsCandle reports whether rtype is one of the OHLCV cadences. All cadences
// are mutually compatible for the callback engine (spec.md section 4.5).
func (rtype RType) IsCandle() bool {
	switch rtype {
	case RType_Ohlcv1S, RType_Ohlcv1M, RType_Ohlcv1H, RType_Ohlcv1D, RType_OhlcvEod, RType_OhlcvDeprecated:
		return true
	default:
		return false
	}
}

// IsCbboFamily reports whether rtype belongs to the consolidated/BBO family,
// all of which share the Mbp1 wire layout (spec.md section 4.3).
func (rtype RType) IsCbboFamily() bool {
	switch rtype {
	case RType_Cbbo, RType_Cbbo1S, RType_Cbbo1M, RType_Tcbbo, RType_Bbo1S, RType_Bbo1M:
		return true
	default:
		return false
	}
}

// IsCompatibleWith reports whether a decoded rtype may be read into a Go
// type whose natural tag is `want`: equal, both candles, or both members
// of the Cbbo family.
func (rtype RType) IsCompatibleWith(want RType) bool {
	if rtype == want {
		return true
	}
	if rtype.IsCandle() && want.IsCandle() {
		return true
	}
	return rtype.IsCbboFamily() && want.IsCbboFamily()
}

// Schema identifies the record schema of a DBN stream's metadata.
type Schema uint16

const (
	Schema_Mixed      Schema = 0xFFFF // Potential mix of schemas/record types.
	Schema_Mbo        Schema = 0
	Schema_Mbp1       Schema = 1
	Schema_Mbp10      Schema = 2
	Schema_Tbbo       Schema = 3
	Schema_Trades     Schema = 4
	Schema_Ohlcv1S    Schema = 5
	Schema_Ohlcv1M    Schema = 6
	Schema_Ohlcv1H    Schema = 7
	Schema_Ohlcv1D    Schema = 8
	Schema_Definition Schema = 9
	Schema_Statistics Schema = 10
	Schema_Status     Schema = 11
	Schema_Imbalance  Schema = 12
	Schema_OhlcvEod   Schema = 13
	Schema_Cbbo       Schema = 14
	Schema_Cbbo1S     Schema = 15
	Schema_Cbbo1M     Schema = 16
	Schema_Tcbbo      Schema = 17
	Schema_Bbo1S      Schema = 18
	Schema_Bbo1M      Schema = 19
)

// String renders the schema's wire name, e.g. "mbo" or "ohlcv-1s", falling
// back to "mixed" for anything undocumented (spec.md section 4.3/7).
func (s Schema) String() string {
	switch s {
	case Schema_Mbo:
		return "mbo"
	case Schema_Mbp1:
		return "mbp-1"
	case Schema_Mbp10:
		return "mbp-10"
	case Schema_Tbbo:
		return "tbbo"
	case Schema_Trades:
		return "trades"
	case Schema_Ohlcv1S:
		return "ohlcv-1s"
	case Schema_Ohlcv1M:
		return "ohlcv-1m"
	case Schema_Ohlcv1H:
		return "ohlcv-1h"
	case Schema_Ohlcv1D:
		return "ohlcv-1d"
	case Schema_Definition:
		return "definition"
	case Schema_Statistics:
		return "statistics"
	case Schema_Status:
		return "status"
	case Schema_Imbalance:
		return "imbalance"
	case Schema_OhlcvEod:
		return "ohlcv-eod"
	case Schema_Cbbo:
		return "cbbo"
	case Schema_Cbbo1S:
		return "cbbo-1s"
	case Schema_Cbbo1M:
		return "cbbo-1m"
	case Schema_Tcbbo:
		return "tcbbo"
	case Schema_Bbo1S:
		return "bbo-1s"
	case Schema_Bbo1M:
		return "bbo-1m"
	default:
		return "mixed"
	}
}

// Encoding is a data encoding format. DBN is the only encoding this codec
// implements; Csv and Json are recorded so Metadata round-trips the tag, but
// converting records to them is out of scope (spec.md section 1).
type Encoding uint8

const (
	Encoding_Dbn  Encoding = 0
	Encoding_Csv  Encoding = 1
	Encoding_Json Encoding = 2
)

// Compression is the transport-level compression of a DBN stream.
type Compression uint8

const (
	Compression_None Compression = 0
	Compression_ZStd Compression = 1
)

// Record flag bits (the `flags` byte on Mbp0/Mbp1/Mbp10/Cbbo records).
const (
	RFlag_LAST          uint8 = 1 << 7 // Last message in the packet for this instrument_id.
	RFlag_TOB           uint8 = 1 << 6 // Top-of-book message, not an individual order.
	RFlag_SNAPSHOT      uint8 = 1 << 5 // Sourced from a replay, e.g. a snapshot server.
	RFlag_MBP           uint8 = 1 << 4 // Aggregated price level message, not an individual order.
	RFlag_BAD_TS_RECV   uint8 = 1 << 3 // ts_recv is inaccurate due to clock issues or reordering.
	RFlag_MAYBE_BAD_BOOK uint8 = 1 << 2 // An unrecoverable gap was detected in the channel.
)

// SecurityUpdateAction is the type of InstrumentDefMsg update.
type SecurityUpdateAction uint8

const (
	SecurityUpdateAction_Add    SecurityUpdateAction = 'A'
	SecurityUpdateAction_Modify SecurityUpdateAction = 'M'
	SecurityUpdateAction_Delete SecurityUpdateAction = 'D'
	// SecurityUpdateAction_Invalid is deprecated, but still present in legacy files.
	SecurityUpdateAction_Invalid SecurityUpdateAction = '~'
)

// StatType is the type of statistic contained in a StatMsg.
type StatType uint16

const (
	StatType_OpeningPrice            StatType = 1
	StatType_IndicativeOpeningPrice  StatType = 2
	StatType_SettlementPrice         StatType = 3
	StatType_TradingSessionLowPrice  StatType = 4
	StatType_TradingSessionHighPrice StatType = 5
	StatType_ClearedVolume           StatType = 6
	StatType_LowestOffer             StatType = 7
	StatType_HighestBid              StatType = 8
	StatType_OpenInterest            StatType = 9
	StatType_FixingPrice             StatType = 10
	StatType_ClosePrice              StatType = 11
	StatType_NetChange                StatType = 12
	StatType_Vwap                     StatType = 13
)

// StatUpdateAction is the type of StatMsg update.
type StatUpdateAction uint8

const (
	StatUpdateAction_New    StatUpdateAction = 1
	StatUpdateAction_Delete StatUpdateAction = 2
)

// StatusAction is the primary enum for a StatusMsg update.
type StatusAction uint16

const (
	StatusAction_None                  StatusAction = 0
	StatusAction_PreOpen               StatusAction = 1
	StatusAction_PreCross               StatusAction = 2
	StatusAction_Quoting                StatusAction = 3
	StatusAction_Cross                  StatusAction = 4
	StatusAction_Rotation               StatusAction = 5
	StatusAction_NewPriceIndication     StatusAction = 6
	StatusAction_Trading                StatusAction = 7
	StatusAction_Halt                   StatusAction = 8
	StatusAction_Pause                  StatusAction = 9
	StatusAction_Suspend                StatusAction = 10
	StatusAction_PreClose                StatusAction = 11
	StatusAction_Close                   StatusAction = 12
	StatusAction_PostClose               StatusAction = 13
	StatusAction_SsrChange               StatusAction = 14
	StatusAction_NotAvailableForTrading   StatusAction = 15
)

// StatusReason is the secondary enum for a StatusMsg update, explaining the
// cause of a halt or other change in StatusAction.
type StatusReason uint16

const (
	StatusReason_None                           StatusReason = 0
	StatusReason_Scheduled                       StatusReason = 1
	StatusReason_SurveillanceIntervention        StatusReason = 2
	StatusReason_MarketEvent                     StatusReason = 3
	StatusReason_InstrumentActivation            StatusReason = 4
	StatusReason_InstrumentExpiration            StatusReason = 5
	StatusReason_RecoveryInProcess                StatusReason = 6
	StatusReason_Regulatory                       StatusReason = 10
	StatusReason_Administrative                   StatusReason = 11
	StatusReason_NonCompliance                    StatusReason = 12
	StatusReason_FilingsNotCurrent                StatusReason = 13
	StatusReason_SecTradingSuspension             StatusReason = 14
	StatusReason_NewIssue                         StatusReason = 15
	StatusReason_IssueAvailable                   StatusReason = 16
	StatusReason_IssuesReviewed                   StatusReason = 17
	StatusReason_FilingReqsSatisfied              StatusReason = 18
	StatusReason_NewsPending                      StatusReason = 30
	StatusReason_NewsReleased                     StatusReason = 31
	StatusReason_NewsAndResumptionTimes           StatusReason = 32
	StatusReason_NewsNotForthcoming               StatusReason = 33
	StatusReason_OrderImbalance                   StatusReason = 40
	StatusReason_LuldPause                        StatusReason = 50
	StatusReason_Operational                      StatusReason = 60
	StatusReason_AdditionalInformationRequested   StatusReason = 70
	StatusReason_MergerEffective                  StatusReason = 80
	StatusReason_Etf                              StatusReason = 90
	StatusReason_CorporateAction                  StatusReason = 100
	StatusReason_NewSecurityOffering               StatusReason = 110
	StatusReason_MarketWideHaltLevel1               StatusReason = 120
	StatusReason_MarketWideHaltLevel2               StatusReason = 121
	StatusReason_MarketWideHaltLevel3               StatusReason = 122
	StatusReason_MarketWideHaltCarryover             StatusReason = 123
	StatusReason_MarketWideHaltResumption            StatusReason = 124
	StatusReason_QuotationNotAvailable                StatusReason = 130
)

// TradingEvent gives further information about a status update.
type TradingEvent uint16

const (
	TradingEvent_None                  TradingEvent = 0
	TradingEvent_NoCancel               TradingEvent = 1
	TradingEvent_ChangeTradingSession   TradingEvent = 2
	TradingEvent_ImpliedMatchingOn      TradingEvent = 3
	TradingEvent_ImpliedMatchingOff     TradingEvent = 4
)

// TriState represents an unknown/true/false value with a human-readable
// wire representation. Equivalent to an optional bool.
type TriState uint8

const (
	TriState_NotAvailable TriState = '~'
	TriState_No           TriState = 'N'
	TriState_Yes          TriState = 'Y'
)
