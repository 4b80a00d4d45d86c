// Copyright (c) 2024 Neomantra Corp
//
// Adapted from DataBento's DBN:
//   https://github.com/databento/dbn/blob/main/rust/dbn/src/record.rs
//

package dbn

import "encoding/binary"

// Record is the marker interface implemented by every decoded record body
// type. It carries no methods of its own; type-specific behavior is reached
// through RecordPtr (spec.md section 4.3).
type Record interface{}

// RecordPtr constrains a pointer-to-Record type that knows its own RType,
// its encoded size, and how to fill itself from raw wire bytes. This
// mirrors the teacher's structs.go generic constraint, corrected to use an
// int (not uint8) size so records over 255 bytes, like Mbp10Msg, don't
// silently truncate.
// FillRaw returns any Diagnostics observed while filling the record: an
// unrecognized enum byte inside a known record is substituted with its
// documented default rather than treated as an error, and that
// substitution is surfaced here (spec.md section 4.3/7).
type RecordPtr[T any] interface {
	*T
	RType() RType
	RSize() int
	FillRaw(b []byte) ([]Diagnostic, error)
}

// BidAskPair is one price level of an MBP/CBBO book snapshot.
type BidAskPair struct {
	BidPx    int64  `json:"bid_px"`
	AskPx    int64  `json:"ask_px"`
	BidSz    uint32 `json:"bid_sz"`
	AskSz    uint32 `json:"ask_sz"`
	BidCt    uint32 `json:"bid_ct"`
	AskCt    uint32 `json:"ask_ct"`
}

// BidAskPairSize is the fixed byte size of a BidAskPair.
const BidAskPairSize = 32

func fillBidAskPairRaw(b []byte, p *BidAskPair) {
	p.BidPx = int64(binary.LittleEndian.Uint64(b[0:8]))
	p.AskPx = int64(binary.LittleEndian.Uint64(b[8:16]))
	p.BidSz = binary.LittleEndian.Uint32(b[16:20])
	p.AskSz = binary.LittleEndian.Uint32(b[20:24])
	p.BidCt = binary.LittleEndian.Uint32(b[24:28])
	p.AskCt = binary.LittleEndian.Uint32(b[28:32])
}

func putBidAskPairRaw(b []byte, p *BidAskPair) {
	binary.LittleEndian.PutUint64(b[0:8], uint64(p.BidPx))
	binary.LittleEndian.PutUint64(b[8:16], uint64(p.AskPx))
	binary.LittleEndian.PutUint32(b[16:20], p.BidSz)
	binary.LittleEndian.PutUint32(b[20:24], p.AskSz)
	binary.LittleEndian.PutUint32(b[24:28], p.BidCt)
	binary.LittleEndian.PutUint32(b[28:32], p.AskCt)
}

// MboMsg is a single order-book event (the Mbo schema).
type MboMsg struct {
	Hdr        RHeader `json:"hd"`
	TsRecv     int64   `json:"ts_recv"`
	OrderID    uint64  `json:"order_id"`
	Size       uint32  `json:"size"`
	Flags      uint8   `json:"flags"`
	ChannelID  uint8   `json:"channel_id"`
	Action     Action  `json:"action"`
	Side       Side    `json:"side"`
	Price      int64   `json:"price"`
	TsInDelta  int32   `json:"ts_in_delta"`
	Sequence   uint32  `json:"sequence"`
}

// MboMsg_Size is the fixed byte size of an MboMsg record, header included.
const MboMsg_Size = RHeaderSize + 40

func (r *MboMsg) RType() RType { return RType_Mbo }
func (r *MboMsg) RSize() int   { return MboMsg_Size }

// FillRaw decodes an MboMsg from a full record (header + body).
func (r *MboMsg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < MboMsg_Size {
		return nil, unexpectedBytesError(-1, "MboMsg", len(b), MboMsg_Size)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	r.TsRecv = int64(binary.LittleEndian.Uint64(body[0:8]))
	r.OrderID = binary.LittleEndian.Uint64(body[8:16])
	r.Size = binary.LittleEndian.Uint32(body[16:20])
	r.Flags = body[20]
	r.ChannelID = body[21]
	var diags []Diagnostic
	action, d := validateAction(body[22], int64(RHeaderSize+22))
	if d != nil {
		diags = append(diags, *d)
	}
	r.Action = action
	side, d := validateSide(body[23], int64(RHeaderSize+23))
	if d != nil {
		diags = append(diags, *d)
	}
	r.Side = side
	r.Price = int64(binary.LittleEndian.Uint64(body[24:32]))
	r.TsInDelta = int32(binary.LittleEndian.Uint32(body[32:36]))
	r.Sequence = binary.LittleEndian.Uint32(body[36:40])
	return diags, nil
}

// WriteRaw encodes an MboMsg into b, which must be at least MboMsg_Size long.
func (r *MboMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	binary.LittleEndian.PutUint64(body[0:8], uint64(r.TsRecv))
	binary.LittleEndian.PutUint64(body[8:16], r.OrderID)
	binary.LittleEndian.PutUint32(body[16:20], r.Size)
	body[20] = r.Flags
	body[21] = r.ChannelID
	body[22] = uint8(r.Action)
	body[23] = uint8(r.Side)
	binary.LittleEndian.PutUint64(body[24:32], uint64(r.Price))
	binary.LittleEndian.PutUint32(body[32:36], uint32(r.TsInDelta))
	binary.LittleEndian.PutUint32(body[36:40], r.Sequence)
}

// Mbp0Msg is a single trade print (the Trades schema, rtype Mbp0).
type Mbp0Msg struct {
	Hdr       RHeader `json:"hd"`
	Price     int64   `json:"price"`
	Size      uint32  `json:"size"`
	Action    Action  `json:"action"`
	Side      Side    `json:"side"`
	Flags     uint8   `json:"flags"`
	Depth     uint8   `json:"depth"`
	TsRecv    int64   `json:"ts_recv"`
	TsInDelta int32   `json:"ts_in_delta"`
	Sequence  uint32  `json:"sequence"`
}

// tradeBodySize is the shared 32-byte trade body shared by Mbp0, and the
// leading portion of Mbp1/Mbp10/Cbbo bodies.
const tradeBodySize = 32

// Mbp0Msg_Size is the fixed byte size of an Mbp0Msg record, header included.
const Mbp0Msg_Size = RHeaderSize + tradeBodySize

func (r *Mbp0Msg) RType() RType { return RType_Mbp0 }
func (r *Mbp0Msg) RSize() int   { return Mbp0Msg_Size }

func fillTradeBody(body []byte, price *int64, size *uint32, action *Action, side *Side, flags, depth *uint8, tsRecv *int64, tsInDelta *int32, sequence *uint32) []Diagnostic {
	*price = int64(binary.LittleEndian.Uint64(body[0:8]))
	*size = binary.LittleEndian.Uint32(body[8:12])
	var diags []Diagnostic
	a, d := validateAction(body[12], int64(RHeaderSize+12))
	if d != nil {
		diags = append(diags, *d)
	}
	*action = a
	s, d := validateSide(body[13], int64(RHeaderSize+13))
	if d != nil {
		diags = append(diags, *d)
	}
	*side = s
	*flags = body[14]
	*depth = body[15]
	*tsRecv = int64(binary.LittleEndian.Uint64(body[16:24]))
	*tsInDelta = int32(binary.LittleEndian.Uint32(body[24:28]))
	*sequence = binary.LittleEndian.Uint32(body[28:32])
	return diags
}

func putTradeBody(body []byte, price int64, size uint32, action Action, side Side, flags, depth uint8, tsRecv int64, tsInDelta int32, sequence uint32) {
	binary.LittleEndian.PutUint64(body[0:8], uint64(price))
	binary.LittleEndian.PutUint32(body[8:12], size)
	body[12] = uint8(action)
	body[13] = uint8(side)
	body[14] = flags
	body[15] = depth
	binary.LittleEndian.PutUint64(body[16:24], uint64(tsRecv))
	binary.LittleEndian.PutUint32(body[24:28], uint32(tsInDelta))
	binary.LittleEndian.PutUint32(body[28:32], sequence)
}

// FillRaw decodes an Mbp0Msg from a full record (header + body).
func (r *Mbp0Msg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < Mbp0Msg_Size {
		return nil, unexpectedBytesError(-1, "Mbp0Msg", len(b), Mbp0Msg_Size)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	diags := fillTradeBody(b[RHeaderSize:], &r.Price, &r.Size, &r.Action, &r.Side, &r.Flags, &r.Depth, &r.TsRecv, &r.TsInDelta, &r.Sequence)
	return diags, nil
}

// WriteRaw encodes an Mbp0Msg into b, which must be at least Mbp0Msg_Size long.
func (r *Mbp0Msg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	putTradeBody(b[RHeaderSize:], r.Price, r.Size, r.Action, r.Side, r.Flags, r.Depth, r.TsRecv, r.TsInDelta, r.Sequence)
}

// Mbp1Msg is a trade plus top-of-book snapshot (the Mbp1/Tbbo schemas).
type Mbp1Msg struct {
	Hdr       RHeader    `json:"hd"`
	Price     int64      `json:"price"`
	Size      uint32     `json:"size"`
	Action    Action     `json:"action"`
	Side      Side       `json:"side"`
	Flags     uint8      `json:"flags"`
	Depth     uint8      `json:"depth"`
	TsRecv    int64      `json:"ts_recv"`
	TsInDelta int32      `json:"ts_in_delta"`
	Sequence  uint32     `json:"sequence"`
	Levels    [1]BidAskPair `json:"levels"`
}

// Mbp1Msg_Size is the fixed byte size of an Mbp1Msg record, header included.
const Mbp1Msg_Size = RHeaderSize + tradeBodySize + 1*BidAskPairSize

func (r *Mbp1Msg) RType() RType { return RType_Mbp1 }
func (r *Mbp1Msg) RSize() int   { return Mbp1Msg_Size }

// FillRaw decodes an Mbp1Msg from a full record (header + body).
func (r *Mbp1Msg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < Mbp1Msg_Size {
		return nil, unexpectedBytesError(-1, "Mbp1Msg", len(b), Mbp1Msg_Size)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	diags := fillTradeBody(body, &r.Price, &r.Size, &r.Action, &r.Side, &r.Flags, &r.Depth, &r.TsRecv, &r.TsInDelta, &r.Sequence)
	fillBidAskPairRaw(body[tradeBodySize:tradeBodySize+BidAskPairSize], &r.Levels[0])
	return diags, nil
}

// WriteRaw encodes an Mbp1Msg into b, which must be at least Mbp1Msg_Size long.
func (r *Mbp1Msg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	putTradeBody(body, r.Price, r.Size, r.Action, r.Side, r.Flags, r.Depth, r.TsRecv, r.TsInDelta, r.Sequence)
	putBidAskPairRaw(body[tradeBodySize:tradeBodySize+BidAskPairSize], &r.Levels[0])
}

// CbboMsg is the consolidated/single-venue BBO family. It shares Mbp1Msg's
// wire layout exactly; only the header's RType distinguishes the six
// members of the family (spec.md section 4.3).
type CbboMsg struct {
	Hdr       RHeader       `json:"hd"`
	Price     int64         `json:"price"`
	Size      uint32        `json:"size"`
	Action    Action        `json:"action"`
	Side      Side          `json:"side"`
	Flags     uint8         `json:"flags"`
	Depth     uint8         `json:"depth"`
	TsRecv    int64         `json:"ts_recv"`
	TsInDelta int32         `json:"ts_in_delta"`
	Sequence  uint32        `json:"sequence"`
	Levels    [1]BidAskPair `json:"levels"`
}

// CbboMsg_Size is the fixed byte size of a CbboMsg record, header included.
const CbboMsg_Size = Mbp1Msg_Size

// RType returns RType_Cbbo for all six family members, which share this
// one Go type; FillRaw keeps the rtype observed on the wire in Hdr.RType.
func (r *CbboMsg) RType() RType { return RType_Cbbo }
func (r *CbboMsg) RSize() int   { return CbboMsg_Size }

// FillRaw decodes a CbboMsg from a full record (header + body).
func (r *CbboMsg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < CbboMsg_Size {
		return nil, unexpectedBytesError(-1, "CbboMsg", len(b), CbboMsg_Size)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	diags := fillTradeBody(body, &r.Price, &r.Size, &r.Action, &r.Side, &r.Flags, &r.Depth, &r.TsRecv, &r.TsInDelta, &r.Sequence)
	fillBidAskPairRaw(body[tradeBodySize:tradeBodySize+BidAskPairSize], &r.Levels[0])
	return diags, nil
}

// WriteRaw encodes a CbboMsg into b, which must be at least CbboMsg_Size long.
func (r *CbboMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	putTradeBody(body, r.Price, r.Size, r.Action, r.Side, r.Flags, r.Depth, r.TsRecv, r.TsInDelta, r.Sequence)
	putBidAskPairRaw(body[tradeBodySize:tradeBodySize+BidAskPairSize], &r.Levels[0])
}

// Mbp10Msg is a trade plus a 10-level book snapshot (the Mbp10 schema).
type Mbp10Msg struct {
	Hdr       RHeader        `json:"hd"`
	Price     int64          `json:"price"`
	Size      uint32         `json:"size"`
	Action    Action         `json:"action"`
	Side      Side           `json:"side"`
	Flags     uint8          `json:"flags"`
	Depth     uint8          `json:"depth"`
	TsRecv    int64          `json:"ts_recv"`
	TsInDelta int32          `json:"ts_in_delta"`
	Sequence  uint32         `json:"sequence"`
	Levels    [10]BidAskPair `json:"levels"`
}

// Mbp10Msg_Size is the fixed byte size of an Mbp10Msg record, header included.
const Mbp10Msg_Size = RHeaderSize + tradeBodySize + 10*BidAskPairSize

func (r *Mbp10Msg) RType() RType { return RType_Mbp10 }
func (r *Mbp10Msg) RSize() int   { return Mbp10Msg_Size }

// FillRaw decodes an Mbp10Msg from a full record (header + body).
func (r *Mbp10Msg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < Mbp10Msg_Size {
		return nil, unexpectedBytesError(-1, "Mbp10Msg", len(b), Mbp10Msg_Size)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	diags := fillTradeBody(body, &r.Price, &r.Size, &r.Action, &r.Side, &r.Flags, &r.Depth, &r.TsRecv, &r.TsInDelta, &r.Sequence)
	for i := 0; i < 10; i++ {
		off := tradeBodySize + i*BidAskPairSize
		fillBidAskPairRaw(body[off:off+BidAskPairSize], &r.Levels[i])
	}
	return diags, nil
}

// WriteRaw encodes an Mbp10Msg into b, which must be at least Mbp10Msg_Size long.
func (r *Mbp10Msg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	putTradeBody(body, r.Price, r.Size, r.Action, r.Side, r.Flags, r.Depth, r.TsRecv, r.TsInDelta, r.Sequence)
	for i := 0; i < 10; i++ {
		off := tradeBodySize + i*BidAskPairSize
		putBidAskPairRaw(body[off:off+BidAskPairSize], &r.Levels[i])
	}
}

// OhlcvMsg is an open/high/low/close/volume bar, for any of the OHLCV
// cadences (spec.md section 4.3, "OHLCV cadence unification").
type OhlcvMsg struct {
	Hdr    RHeader `json:"hd"`
	Open   int64   `json:"open"`
	High   int64   `json:"high"`
	Low    int64   `json:"low"`
	Close  int64   `json:"close"`
	Volume uint64  `json:"volume"`
}

// OhlcvMsg_Size is the fixed byte size of an OhlcvMsg record, header included.
const OhlcvMsg_Size = RHeaderSize + 40

func (r *OhlcvMsg) RType() RType { return r.Hdr.RType }
func (r *OhlcvMsg) RSize() int   { return OhlcvMsg_Size }

// FillRaw decodes an OhlcvMsg from a full record (header + body). The
// header's RType preserves which cadence this bar was read as.
func (r *OhlcvMsg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < OhlcvMsg_Size {
		return nil, unexpectedBytesError(-1, "OhlcvMsg", len(b), OhlcvMsg_Size)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	r.Open = int64(binary.LittleEndian.Uint64(body[0:8]))
	r.High = int64(binary.LittleEndian.Uint64(body[8:16]))
	r.Low = int64(binary.LittleEndian.Uint64(body[16:24]))
	r.Close = int64(binary.LittleEndian.Uint64(body[24:32]))
	r.Volume = binary.LittleEndian.Uint64(body[32:40])
	return nil, nil
}

// WriteRaw encodes an OhlcvMsg into b, which must be at least OhlcvMsg_Size long.
func (r *OhlcvMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	binary.LittleEndian.PutUint64(body[0:8], uint64(r.Open))
	binary.LittleEndian.PutUint64(body[8:16], uint64(r.High))
	binary.LittleEndian.PutUint64(body[16:24], uint64(r.Low))
	binary.LittleEndian.PutUint64(body[24:32], uint64(r.Close))
	binary.LittleEndian.PutUint64(body[32:40], r.Volume)
}

// StatusMsg is an exchange/venue trading status update.
type StatusMsg struct {
	Hdr                   RHeader      `json:"hd"`
	TsRecv                uint64       `json:"ts_recv"`
	Action                StatusAction `json:"action"`
	Reason                StatusReason `json:"reason"`
	TradingEvent          TradingEvent `json:"trading_event"`
	IsTrading             TriState     `json:"is_trading"`
	IsQuoting             TriState     `json:"is_quoting"`
	IsShortSellRestricted TriState     `json:"is_short_sell_restricted"`
}

// StatusMsg_Size is the fixed byte size of a StatusMsg record, header included.
const StatusMsg_Size = RHeaderSize + 24

func (r *StatusMsg) RType() RType { return RType_Status }
func (r *StatusMsg) RSize() int   { return StatusMsg_Size }

// FillRaw decodes a StatusMsg from a full record (header + body).
func (r *StatusMsg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < StatusMsg_Size {
		return nil, unexpectedBytesError(-1, "StatusMsg", len(b), StatusMsg_Size)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	r.TsRecv = binary.LittleEndian.Uint64(body[0:8])
	r.Action = StatusAction(binary.LittleEndian.Uint16(body[8:10]))
	r.Reason = StatusReason(binary.LittleEndian.Uint16(body[10:12]))
	r.TradingEvent = TradingEvent(binary.LittleEndian.Uint16(body[12:14]))
	r.IsTrading = TriState(body[14])
	r.IsQuoting = TriState(body[15])
	r.IsShortSellRestricted = TriState(body[16])
	// body[17:24] is reserved padding.
	return nil, nil
}

// WriteRaw encodes a StatusMsg into b, which must be at least StatusMsg_Size long.
func (r *StatusMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	binary.LittleEndian.PutUint64(body[0:8], r.TsRecv)
	binary.LittleEndian.PutUint16(body[8:10], uint16(r.Action))
	binary.LittleEndian.PutUint16(body[10:12], uint16(r.Reason))
	binary.LittleEndian.PutUint16(body[12:14], uint16(r.TradingEvent))
	body[14] = uint8(r.IsTrading)
	body[15] = uint8(r.IsQuoting)
	body[16] = uint8(r.IsShortSellRestricted)
	for i := 17; i < 24; i++ {
		body[i] = 0
	}
}

// ImbalanceMsg is an auction imbalance record.
type ImbalanceMsg struct {
	Hdr                   RHeader               `json:"hd"`
	TsRecv                uint64                `json:"ts_recv"`
	RefPrice              int64                 `json:"ref_price"`
	AuctionTime           uint64                `json:"auction_time"`
	ContBookClrPrice      int64                 `json:"cont_book_clr_price"`
	AuctInterestClrPrice  int64                 `json:"auct_interest_clr_price"`
	SsrFillingPrice       int64                 `json:"ssr_filling_price"`
	IndMatchPrice         int64                 `json:"ind_match_price"`
	UpperCollar           int64                 `json:"upper_collar"`
	LowerCollar           int64                 `json:"lower_collar"`
	PairedQty             uint32                `json:"paired_qty"`
	TotalImbalanceQty     uint32                `json:"total_imbalance_qty"`
	MarketImbalanceQty    uint32                `json:"market_imbalance_qty"`
	UnpairedQty           int32                 `json:"unpaired_qty"`
	AuctionType           uint8                 `json:"auction_type"`
	Side                  Side                  `json:"side"`
	AuctionStatus         uint8                 `json:"auction_status"`
	FreezeStatus          uint8                 `json:"freeze_status"`
	NumExtensions         uint8                 `json:"num_extensions"`
	UnpairedSide          Side                  `json:"unpaired_side"`
	SignificantImbalance  TriState              `json:"significant_imbalance"`
}

// ImbalanceMsg_Size is the fixed byte size of an ImbalanceMsg record,
// header included. The body carries a single trailing reserved byte.
const ImbalanceMsg_Size = RHeaderSize + 96

func (r *ImbalanceMsg) RType() RType { return RType_Imbalance }
func (r *ImbalanceMsg) RSize() int   { return ImbalanceMsg_Size }

// FillRaw decodes an ImbalanceMsg from a full record (header + body).
func (r *ImbalanceMsg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < ImbalanceMsg_Size {
		return nil, unexpectedBytesError(-1, "ImbalanceMsg", len(b), ImbalanceMsg_Size)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	r.TsRecv = binary.LittleEndian.Uint64(body[0:8])
	r.RefPrice = int64(binary.LittleEndian.Uint64(body[8:16]))
	r.AuctionTime = binary.LittleEndian.Uint64(body[16:24])
	r.ContBookClrPrice = int64(binary.LittleEndian.Uint64(body[24:32]))
	r.AuctInterestClrPrice = int64(binary.LittleEndian.Uint64(body[32:40]))
	r.SsrFillingPrice = int64(binary.LittleEndian.Uint64(body[40:48]))
	r.IndMatchPrice = int64(binary.LittleEndian.Uint64(body[48:56]))
	r.UpperCollar = int64(binary.LittleEndian.Uint64(body[56:64]))
	r.LowerCollar = int64(binary.LittleEndian.Uint64(body[64:72]))
	r.PairedQty = binary.LittleEndian.Uint32(body[72:76])
	r.TotalImbalanceQty = binary.LittleEndian.Uint32(body[76:80])
	r.MarketImbalanceQty = binary.LittleEndian.Uint32(body[80:84])
	r.UnpairedQty = int32(binary.LittleEndian.Uint32(body[84:88]))
	r.AuctionType = body[88]
	var diags []Diagnostic
	side, d := validateSide(body[89], int64(RHeaderSize+89))
	if d != nil {
		diags = append(diags, *d)
	}
	r.Side = side
	r.AuctionStatus = body[90]
	r.FreezeStatus = body[91]
	r.NumExtensions = body[92]
	unpairedSide, d := validateSide(body[93], int64(RHeaderSize+93))
	if d != nil {
		diags = append(diags, *d)
	}
	r.UnpairedSide = unpairedSide
	r.SignificantImbalance = TriState(body[94])
	// body[95] is reserved padding.
	return diags, nil
}

// WriteRaw encodes an ImbalanceMsg into b, which must be at least
// ImbalanceMsg_Size long.
func (r *ImbalanceMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	binary.LittleEndian.PutUint64(body[0:8], r.TsRecv)
	binary.LittleEndian.PutUint64(body[8:16], uint64(r.RefPrice))
	binary.LittleEndian.PutUint64(body[16:24], r.AuctionTime)
	binary.LittleEndian.PutUint64(body[24:32], uint64(r.ContBookClrPrice))
	binary.LittleEndian.PutUint64(body[32:40], uint64(r.AuctInterestClrPrice))
	binary.LittleEndian.PutUint64(body[40:48], uint64(r.SsrFillingPrice))
	binary.LittleEndian.PutUint64(body[48:56], uint64(r.IndMatchPrice))
	binary.LittleEndian.PutUint64(body[56:64], uint64(r.UpperCollar))
	binary.LittleEndian.PutUint64(body[64:72], uint64(r.LowerCollar))
	binary.LittleEndian.PutUint32(body[72:76], r.PairedQty)
	binary.LittleEndian.PutUint32(body[76:80], r.TotalImbalanceQty)
	binary.LittleEndian.PutUint32(body[80:84], r.MarketImbalanceQty)
	binary.LittleEndian.PutUint32(body[84:88], uint32(r.UnpairedQty))
	body[88] = r.AuctionType
	body[89] = uint8(r.Side)
	body[90] = r.AuctionStatus
	body[91] = r.FreezeStatus
	body[92] = r.NumExtensions
	body[93] = uint8(r.UnpairedSide)
	body[94] = uint8(r.SignificantImbalance)
	body[95] = 0
}

// StatMsg is a single publisher-calculated statistic.
//
// The quantity field is a u64 sentinel slot (spec.md section 3: "u64::MAX
// in the statistic-quantity slot means undefined quantity and MUST
// round-trip as that sentinel"), which is wider than the reserved tail
// would otherwise need; see DESIGN.md for how the two are reconciled to a
// 48-byte body.
type StatMsg struct {
	Hdr           RHeader          `json:"hd"`
	TsRecv        uint64           `json:"ts_recv"`
	TsRef         uint64           `json:"ts_ref"`
	Price         int64            `json:"price"`
	Quantity      uint64           `json:"quantity"`
	Sequence      uint32           `json:"sequence"`
	TsInDelta     int32            `json:"ts_in_delta"`
	StatType      StatType         `json:"stat_type"`
	ChannelID     uint16           `json:"channel_id"`
	UpdateAction  StatUpdateAction `json:"update_action"`
	StatFlags     uint8            `json:"stat_flags"`
}

// StatMsg_Size is the fixed byte size of a StatMsg record, header included.
const StatMsg_Size = RHeaderSize + 48

func (r *StatMsg) RType() RType { return RType_Statistics }
func (r *StatMsg) RSize() int   { return StatMsg_Size }

// FillRaw decodes a StatMsg from a full record (header + body).
func (r *StatMsg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < StatMsg_Size {
		return nil, unexpectedBytesError(-1, "StatMsg", len(b), StatMsg_Size)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	r.TsRecv = binary.LittleEndian.Uint64(body[0:8])
	r.TsRef = binary.LittleEndian.Uint64(body[8:16])
	r.Price = int64(binary.LittleEndian.Uint64(body[16:24]))
	r.Quantity = binary.LittleEndian.Uint64(body[24:32])
	r.Sequence = binary.LittleEndian.Uint32(body[32:36])
	r.TsInDelta = int32(binary.LittleEndian.Uint32(body[36:40]))
	r.StatType = StatType(binary.LittleEndian.Uint16(body[40:42]))
	r.ChannelID = binary.LittleEndian.Uint16(body[42:44])
	r.UpdateAction = StatUpdateAction(body[44])
	r.StatFlags = body[45]
	// body[46:48] is reserved padding.
	return nil, nil
}

// WriteRaw encodes a StatMsg into b, which must be at least StatMsg_Size long.
func (r *StatMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	binary.LittleEndian.PutUint64(body[0:8], r.TsRecv)
	binary.LittleEndian.PutUint64(body[8:16], r.TsRef)
	binary.LittleEndian.PutUint64(body[16:24], uint64(r.Price))
	binary.LittleEndian.PutUint64(body[24:32], r.Quantity)
	binary.LittleEndian.PutUint32(body[32:36], r.Sequence)
	binary.LittleEndian.PutUint32(body[36:40], uint32(r.TsInDelta))
	binary.LittleEndian.PutUint16(body[40:42], uint16(r.StatType))
	binary.LittleEndian.PutUint16(body[42:44], r.ChannelID)
	body[44] = uint8(r.UpdateAction)
	body[45] = r.StatFlags
	body[46] = 0
	body[47] = 0
}

// ErrorMsg is an error sent by the gateway. Its body is a single
// NUL-padded/terminated UTF-8 string filling the remainder of the record
// (spec.md section 4.3).
type ErrorMsg struct {
	Hdr RHeader `json:"hd"`
	Err string  `json:"err"`
}

func (r *ErrorMsg) RType() RType { return RType_Error }

// RSize returns the record's total byte size, derived from Hdr.Length
// (ErrorMsg's body is variable-length, unlike the fixed-size record types).
func (r *ErrorMsg) RSize() int { return r.Hdr.ByteSize() }

// FillRaw decodes an ErrorMsg from a full record (header + body).
func (r *ErrorMsg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < RHeaderSize {
		return nil, unexpectedBytesError(-1, "ErrorMsg", len(b), RHeaderSize)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	r.Err = TrimNullBytes(b[RHeaderSize:])
	return nil, nil
}

// WriteRaw encodes an ErrorMsg into b, which must be at least
// ErrorMsgWireSize(r) bytes long.
func (r *ErrorMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	n := copy(body, r.Err)
	for ; n < len(body); n++ {
		body[n] = 0
	}
}

// ErrorMsgWireSize returns the total record byte size needed to encode
// r, rounded up to the next 4-byte length_units boundary.
func ErrorMsgWireSize(r *ErrorMsg) int {
	n := RHeaderSize + len(r.Err) + 1
	if rem := n % 4; rem != 0 {
		n += 4 - rem
	}
	return n
}

// SystemMsg is a non-error gateway message, including heartbeats. Its body
// holds up to two NUL-terminated strings: msg, then an optional code
// (spec.md section 4.3).
type SystemMsg struct {
	Hdr  RHeader `json:"hd"`
	Msg  string  `json:"msg"`
	Code string  `json:"code"`
}

func (r *SystemMsg) RType() RType { return RType_System }
func (r *SystemMsg) RSize() int   { return r.Hdr.ByteSize() }

// FillRaw decodes a SystemMsg from a full record (header + body).
func (r *SystemMsg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < RHeaderSize {
		return nil, unexpectedBytesError(-1, "SystemMsg", len(b), RHeaderSize)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	nul := -1
	for i, c := range body {
		if c == 0 {
			nul = i
			break
		}
	}
	if nul < 0 {
		r.Msg = TrimNullBytes(body)
		r.Code = ""
		return nil, nil
	}
	r.Msg = string(body[:nul])
	r.Code = TrimNullBytes(body[nul+1:])
	return nil, nil
}

// WriteRaw encodes a SystemMsg into b, which must be at least
// SystemMsgWireSize(r) bytes long. An empty Code writes only Msg,
// matching the "absent second string" decode case.
func (r *SystemMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	pos := copy(body, r.Msg)
	body[pos] = 0
	pos++
	if r.Code != "" {
		pos += copy(body[pos:], r.Code)
	}
	for ; pos < len(body); pos++ {
		body[pos] = 0
	}
}

// SystemMsgWireSize returns the total record byte size needed to encode
// r, rounded up to the next 4-byte length_units boundary.
func SystemMsgWireSize(r *SystemMsg) int {
	n := RHeaderSize + len(r.Msg) + 1
	if r.Code != "" {
		n += len(r.Code) + 1
	}
	if rem := n % 4; rem != 0 {
		n += 4 - rem
	}
	return n
}

// SymbolMappingMsg records a historical instrument_id-to-symbol mapping,
// with explicit length-prefixed symbol fields rather than a fixed
// metadata-wide width (spec.md section 4.3).
type SymbolMappingMsg struct {
	Hdr            RHeader `json:"hd"`
	StypeIn        SType   `json:"stype_in"`
	StypeInSymbol  string  `json:"stype_in_symbol"`
	StypeOut       SType   `json:"stype_out"`
	StypeOutSymbol string  `json:"stype_out_symbol"`
	StartTs        int64   `json:"start_ts"`
	EndTs          int64   `json:"end_ts"`
}

func (r *SymbolMappingMsg) RType() RType { return RType_SymbolMapping }
func (r *SymbolMappingMsg) RSize() int   { return r.Hdr.ByteSize() }

// FillRaw decodes a SymbolMappingMsg from a full record (header + body).
func (r *SymbolMappingMsg) FillRaw(b []byte) ([]Diagnostic, error) {
	if len(b) < RHeaderSize {
		return nil, unexpectedBytesError(-1, "SymbolMappingMsg", len(b), RHeaderSize)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	if len(body) < 6 {
		return nil, unexpectedBytesError(-1, "SymbolMappingMsg.stype_in_len", len(body), 6)
	}
	r.StypeIn = SType(body[0])
	stypeInLen := int(binary.LittleEndian.Uint16(body[4:6]))
	pos := 6
	if len(body) < pos+stypeInLen+6 {
		return nil, unexpectedBytesError(-1, "SymbolMappingMsg.stype_in_symbol", len(body), pos+stypeInLen+6)
	}
	r.StypeInSymbol = TrimNullBytes(body[pos : pos+stypeInLen])
	pos += stypeInLen
	r.StypeOut = SType(body[pos])
	stypeOutLen := int(binary.LittleEndian.Uint16(body[pos+4 : pos+6]))
	pos += 6
	if len(body) < pos+stypeOutLen+16 {
		return nil, unexpectedBytesError(-1, "SymbolMappingMsg.stype_out_symbol", len(body), pos+stypeOutLen+16)
	}
	r.StypeOutSymbol = TrimNullBytes(body[pos : pos+stypeOutLen])
	pos += stypeOutLen
	r.StartTs = int64(binary.LittleEndian.Uint64(body[pos : pos+8]))
	r.EndTs = int64(binary.LittleEndian.Uint64(body[pos+8 : pos+16]))
	return nil, nil
}

// WriteRaw encodes a SymbolMappingMsg into b, which must be sized exactly
// to the record's total length (see SymbolMappingWireSize).
func (r *SymbolMappingMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	body[0] = uint8(r.StypeIn)
	body[1], body[2], body[3] = 0, 0, 0
	binary.LittleEndian.PutUint16(body[4:6], uint16(len(r.StypeInSymbol)))
	pos := 6
	copy(body[pos:pos+len(r.StypeInSymbol)], r.StypeInSymbol)
	pos += len(r.StypeInSymbol)
	body[pos] = uint8(r.StypeOut)
	body[pos+1], body[pos+2], body[pos+3] = 0, 0, 0
	binary.LittleEndian.PutUint16(body[pos+4:pos+6], uint16(len(r.StypeOutSymbol)))
	pos += 6
	copy(body[pos:pos+len(r.StypeOutSymbol)], r.StypeOutSymbol)
	pos += len(r.StypeOutSymbol)
	binary.LittleEndian.PutUint64(body[pos:pos+8], uint64(r.StartTs))
	binary.LittleEndian.PutUint64(body[pos+8:pos+16], uint64(r.EndTs))
}

// SymbolMappingWireSize computes the total record byte size needed to
// encode r, rounded up to the next 4-byte length_units boundary.
func SymbolMappingWireSize(r *SymbolMappingMsg) int {
	n := RHeaderSize + 6 + len(r.StypeInSymbol) + 6 + len(r.StypeOutSymbol) + 16
	if rem := n % 4; rem != 0 {
		n += 4 - rem
	}
	return n
}

// InstrumentDefLegs is the fixed 13-field tail present only on version-3
// InstrumentDefMsg records, describing one leg of a multi-leg instrument
// (spec.md section 4.3, "Version-gated layout").
type InstrumentDefLegs struct {
	LegPrice                  int64  `json:"leg_price"`
	LegDelta                  int64  `json:"leg_delta"`
	LegInstrumentID           uint32 `json:"leg_instrument_id"`
	LegRatioPriceNumerator    int32  `json:"leg_ratio_price_numerator"`
	LegRatioPriceDenominator  int32  `json:"leg_ratio_price_denominator"`
	LegRatioQtyNumerator      int32  `json:"leg_ratio_qty_numerator"`
	LegRatioQtyDenominator    int32  `json:"leg_ratio_qty_denominator"`
	LegUnderlyingID           uint32 `json:"leg_underlying_id"`
	LegVolume                 int32  `json:"leg_volume"`
	LegRawSymbol              string `json:"leg_raw_symbol"`
	LegInstrumentClass        InstrumentClass `json:"leg_instrument_class"`
	LegSide                   Side   `json:"leg_side"`
	LegCount                  uint8  `json:"leg_count"`
}

// instrumentDefLegsSize is the fixed byte size of the v3 leg tail,
// including one trailing reserved pad byte not among the 13 named fields.
const instrumentDefLegsSize = 56

func fillInstrumentDefLegs(b []byte, l *InstrumentDefLegs, baseOffset int64) []Diagnostic {
	l.LegPrice = int64(binary.LittleEndian.Uint64(b[0:8]))
	l.LegDelta = int64(binary.LittleEndian.Uint64(b[8:16]))
	l.LegInstrumentID = binary.LittleEndian.Uint32(b[16:20])
	l.LegRatioPriceNumerator = int32(binary.LittleEndian.Uint32(b[20:24]))
	l.LegRatioPriceDenominator = int32(binary.LittleEndian.Uint32(b[24:28]))
	l.LegRatioQtyNumerator = int32(binary.LittleEndian.Uint32(b[28:32]))
	l.LegRatioQtyDenominator = int32(binary.LittleEndian.Uint32(b[32:36]))
	l.LegUnderlyingID = binary.LittleEndian.Uint32(b[36:40])
	l.LegVolume = int32(binary.LittleEndian.Uint32(b[40:44]))
	l.LegRawSymbol = TrimNullBytes(b[44:52])
	var diags []Diagnostic
	var d *Diagnostic
	l.LegInstrumentClass, d = validateInstrumentClass(b[52], baseOffset+52)
	if d != nil {
		diags = append(diags, *d)
	}
	l.LegSide, d = validateSide(b[53], baseOffset+53)
	if d != nil {
		diags = append(diags, *d)
	}
	l.LegCount = b[54]
	// b[55] is reserved padding.
	return diags
}

func putInstrumentDefLegs(b []byte, l *InstrumentDefLegs) {
	binary.LittleEndian.PutUint64(b[0:8], uint64(l.LegPrice))
	binary.LittleEndian.PutUint64(b[8:16], uint64(l.LegDelta))
	binary.LittleEndian.PutUint32(b[16:20], l.LegInstrumentID)
	binary.LittleEndian.PutUint32(b[20:24], uint32(l.LegRatioPriceNumerator))
	binary.LittleEndian.PutUint32(b[24:28], uint32(l.LegRatioPriceDenominator))
	binary.LittleEndian.PutUint32(b[28:32], uint32(l.LegRatioQtyNumerator))
	binary.LittleEndian.PutUint32(b[32:36], uint32(l.LegRatioQtyDenominator))
	binary.LittleEndian.PutUint32(b[36:40], l.LegUnderlyingID)
	binary.LittleEndian.PutUint32(b[40:44], uint32(l.LegVolume))
	copy(b[44:52], l.LegRawSymbol)
	b[52] = uint8(l.LegInstrumentClass)
	b[53] = uint8(l.LegSide)
	b[54] = l.LegCount
	b[55] = 0
}

// InstrumentDefMsg is an instrument definition record. Its wire layout is
// version-gated (spec.md section 4.3): version 2 has a 19-byte RawSymbol
// and no leg tail; version 3 widens RawSymbol to 22 bytes and appends a
// fixed 13-field leg tail (InstrumentDefLegs). The two versions otherwise
// share the same leading fields, grouped 8-byte, then 4-byte, then
// 2-byte, then string, then 1-byte, per the field-ordering rule.
type InstrumentDefMsg struct {
	Hdr                  RHeader `json:"hd"`
	Version              uint8   `json:"-"`
	TsRecv               uint64  `json:"ts_recv"`
	MinPriceIncrement    int64   `json:"min_price_increment"`
	HighLimitPrice       int64   `json:"high_limit_price"`
	LowLimitPrice        int64   `json:"low_limit_price"`
	Expiration           int64   `json:"expiration"`
	Activation           int64   `json:"activation"`
	MaxPriceVariation    int64   `json:"max_price_variation"`
	InstrumentID         uint32  `json:"instrument_id"`
	UnderlyingID         uint32  `json:"underlying_id"`
	MinLotSize           int32   `json:"min_lot_size"`
	TickRuleType         int32   `json:"tick_rule_type"`
	MaturityYear         uint16  `json:"maturity_year"`
	ChannelID            uint16  `json:"channel_id"`
	RawSymbol            string  `json:"raw_symbol"`
	Exchange             string  `json:"exchange"`
	Asset                string  `json:"asset"`
	Currency             string  `json:"currency"`
	InstrumentClass      InstrumentClass      `json:"instrument_class"`
	MatchAlgorithm       MatchAlgorithm       `json:"match_algorithm"`
	SecurityUpdateAction SecurityUpdateAction `json:"security_update_action"`
	UserDefinedInstrument UserDefinedInstrument `json:"user_defined_instrument"`
	Legs                 []InstrumentDefLegs  `json:"legs,omitempty"`
}

const (
	instrumentDefRawSymbolLenV2 = 19
	instrumentDefRawSymbolLenV3 = 22

	// instrumentDefMainFieldsSize is every fixed-layout field excluding
	// RawSymbol: the 7-field 8-byte group, the 4-field 4-byte group, the
	// 2-field 2-byte group, Exchange/Asset/Currency, and the 1-byte group.
	instrumentDefMainFieldsSize = 56 /*8-byte*/ + 16 /*4-byte*/ + 4 /*2-byte*/ + 5 + 7 + 4 /*Exchange,Asset,Currency*/ + 4 /*1-byte group*/

	// instrumentDefV2ReservedPad pads the v2 body out to a 4-byte boundary.
	instrumentDefV2ReservedPad = 1

	// instrumentDefV3ReservedPad separates the main fields from the leg tail.
	instrumentDefV3ReservedPad = 138

	// InstrumentDefV2_Size is the fixed total byte size of a version-2
	// InstrumentDefMsg record.
	InstrumentDefV2_Size = RHeaderSize + instrumentDefMainFieldsSize + instrumentDefRawSymbolLenV2 + instrumentDefV2ReservedPad

	// InstrumentDefV3_Size is the fixed total byte size of a version-3
	// InstrumentDefMsg record, which adds the reserved gap and the
	// 56-byte leg tail.
	InstrumentDefV3_Size = RHeaderSize + instrumentDefMainFieldsSize + instrumentDefRawSymbolLenV3 + instrumentDefV3ReservedPad + instrumentDefLegsSize
)

func (r *InstrumentDefMsg) RType() RType { return RType_InstrumentDef }

// RSize returns the record's total byte size for its decoded version.
func (r *InstrumentDefMsg) RSize() int {
	if r.Version >= 3 {
		return InstrumentDefV3_Size
	}
	return InstrumentDefV2_Size
}

// FillRaw decodes an InstrumentDefMsg from a full record (header + body).
// version selects the v2 (19-byte RawSymbol, no legs) or v3 (22-byte
// RawSymbol plus a leg tail) layout (spec.md section 4.3).
func (r *InstrumentDefMsg) FillRaw(b []byte, version uint8) ([]Diagnostic, error) {
	r.Version = version
	want := r.RSize()
	if version < 3 {
		want = InstrumentDefV2_Size
	} else {
		want = InstrumentDefV3_Size
	}
	if len(b) < want {
		return nil, unexpectedBytesError(-1, "InstrumentDefMsg", len(b), want)
	}
	if err := FillRHeaderRaw(b, &r.Hdr); err != nil {
		return nil, err
	}
	body := b[RHeaderSize:]
	pos := 0
	r.TsRecv = binary.LittleEndian.Uint64(body[pos : pos+8])
	pos += 8
	r.MinPriceIncrement = int64(binary.LittleEndian.Uint64(body[pos : pos+8]))
	pos += 8
	r.HighLimitPrice = int64(binary.LittleEndian.Uint64(body[pos : pos+8]))
	pos += 8
	r.LowLimitPrice = int64(binary.LittleEndian.Uint64(body[pos : pos+8]))
	pos += 8
	r.Expiration = int64(binary.LittleEndian.Uint64(body[pos : pos+8]))
	pos += 8
	r.Activation = int64(binary.LittleEndian.Uint64(body[pos : pos+8]))
	pos += 8
	r.MaxPriceVariation = int64(binary.LittleEndian.Uint64(body[pos : pos+8]))
	pos += 8
	r.InstrumentID = binary.LittleEndian.Uint32(body[pos : pos+4])
	pos += 4
	r.UnderlyingID = binary.LittleEndian.Uint32(body[pos : pos+4])
	pos += 4
	r.MinLotSize = int32(binary.LittleEndian.Uint32(body[pos : pos+4]))
	pos += 4
	r.TickRuleType = int32(binary.LittleEndian.Uint32(body[pos : pos+4]))
	pos += 4
	r.MaturityYear = binary.LittleEndian.Uint16(body[pos : pos+2])
	pos += 2
	r.ChannelID = binary.LittleEndian.Uint16(body[pos : pos+2])
	pos += 2

	rawSymbolLen := instrumentDefRawSymbolLenV2
	if version >= 3 {
		rawSymbolLen = instrumentDefRawSymbolLenV3
	}
	r.RawSymbol = TrimNullBytes(body[pos : pos+rawSymbolLen])
	pos += rawSymbolLen
	r.Exchange = TrimNullBytes(body[pos : pos+5])
	pos += 5
	r.Asset = TrimNullBytes(body[pos : pos+7])
	pos += 7
	r.Currency = TrimNullBytes(body[pos : pos+4])
	pos += 4

	var diags []Diagnostic
	var d *Diagnostic
	r.InstrumentClass, d = validateInstrumentClass(body[pos], int64(RHeaderSize+pos))
	if d != nil {
		diags = append(diags, *d)
	}
	r.MatchAlgorithm = MatchAlgorithm(body[pos+1])
	r.SecurityUpdateAction = SecurityUpdateAction(body[pos+2])
	r.UserDefinedInstrument = UserDefinedInstrument(body[pos+3])
	pos += 4

	if version >= 3 {
		pos += instrumentDefV3ReservedPad
		var leg InstrumentDefLegs
		legDiags := fillInstrumentDefLegs(body[pos:pos+instrumentDefLegsSize], &leg, int64(RHeaderSize+pos))
		diags = append(diags, legDiags...)
		r.Legs = []InstrumentDefLegs{leg}
	} else {
		r.Legs = nil
	}
	return diags, nil
}

// WriteRaw encodes r into b, sized per r.RSize() for r.Version.
func (r *InstrumentDefMsg) WriteRaw(b []byte) {
	PutRHeaderRaw(b, &r.Hdr)
	body := b[RHeaderSize:]
	pos := 0
	binary.LittleEndian.PutUint64(body[pos:pos+8], r.TsRecv)
	pos += 8
	binary.LittleEndian.PutUint64(body[pos:pos+8], uint64(r.MinPriceIncrement))
	pos += 8
	binary.LittleEndian.PutUint64(body[pos:pos+8], uint64(r.HighLimitPrice))
	pos += 8
	binary.LittleEndian.PutUint64(body[pos:pos+8], uint64(r.LowLimitPrice))
	pos += 8
	binary.LittleEndian.PutUint64(body[pos:pos+8], uint64(r.Expiration))
	pos += 8
	binary.LittleEndian.PutUint64(body[pos:pos+8], uint64(r.Activation))
	pos += 8
	binary.LittleEndian.PutUint64(body[pos:pos+8], uint64(r.MaxPriceVariation))
	pos += 8
	binary.LittleEndian.PutUint32(body[pos:pos+4], r.InstrumentID)
	pos += 4
	binary.LittleEndian.PutUint32(body[pos:pos+4], r.UnderlyingID)
	pos += 4
	binary.LittleEndian.PutUint32(body[pos:pos+4], uint32(r.MinLotSize))
	pos += 4
	binary.LittleEndian.PutUint32(body[pos:pos+4], uint32(r.TickRuleType))
	pos += 4
	binary.LittleEndian.PutUint16(body[pos:pos+2], r.MaturityYear)
	pos += 2
	binary.LittleEndian.PutUint16(body[pos:pos+2], r.ChannelID)
	pos += 2

	rawSymbolLen := instrumentDefRawSymbolLenV2
	if r.Version >= 3 {
		rawSymbolLen = instrumentDefRawSymbolLenV3
	}
	copy(body[pos:pos+rawSymbolLen], r.RawSymbol)
	pos += rawSymbolLen
	copy(body[pos:pos+5], r.Exchange)
	pos += 5
	copy(body[pos:pos+7], r.Asset)
	pos += 7
	copy(body[pos:pos+4], r.Currency)
	pos += 4

	body[pos] = uint8(r.InstrumentClass)
	body[pos+1] = uint8(r.MatchAlgorithm)
	body[pos+2] = uint8(r.SecurityUpdateAction)
	body[pos+3] = uint8(r.UserDefinedInstrument)
	pos += 4

	if r.Version >= 3 {
		for i := 0; i < instrumentDefV3ReservedPad; i++ {
			body[pos+i] = 0
		}
		pos += instrumentDefV3ReservedPad
		var leg InstrumentDefLegs
		if len(r.Legs) > 0 {
			leg = r.Legs[0]
		}
		putInstrumentDefLegs(body[pos:pos+instrumentDefLegsSize], &leg)
	} else {
		for i := 0; i < instrumentDefV2ReservedPad; i++ {
			body[pos+i] = 0
		}
	}
}
