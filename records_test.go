// Copyright (c) 2024 Neomantra Corp

package dbn_test

import (
	"unsafe"

	dbn "github.com/neomantra/dbncodec"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Records", func() {
	Context("wire sizes", func() {
		It("struct sizes should match their wire _Size constants", func() {
			Expect(unsafe.Sizeof(dbn.RHeader{})).To(Equal(uintptr(dbn.RHeaderSize)))
			Expect(unsafe.Sizeof(dbn.BidAskPair{})).To(Equal(uintptr(dbn.BidAskPairSize)))
			Expect(unsafe.Sizeof(dbn.MboMsg{})).To(Equal(uintptr(dbn.MboMsg_Size)))
			Expect(unsafe.Sizeof(dbn.Mbp0Msg{})).To(Equal(uintptr(dbn.Mbp0Msg_Size)))
			Expect(unsafe.Sizeof(dbn.Mbp1Msg{})).To(Equal(uintptr(dbn.Mbp1Msg_Size)))
			Expect(unsafe.Sizeof(dbn.Mbp10Msg{})).To(Equal(uintptr(dbn.Mbp10Msg_Size)))
			Expect(unsafe.Sizeof(dbn.CbboMsg{})).To(Equal(uintptr(dbn.CbboMsg_Size)))
			Expect(unsafe.Sizeof(dbn.OhlcvMsg{})).To(Equal(uintptr(dbn.OhlcvMsg_Size)))
			Expect(unsafe.Sizeof(dbn.StatusMsg{})).To(Equal(uintptr(dbn.StatusMsg_Size)))
			Expect(unsafe.Sizeof(dbn.ImbalanceMsg{})).To(Equal(uintptr(dbn.ImbalanceMsg_Size)))
			Expect(unsafe.Sizeof(dbn.StatMsg{})).To(Equal(uintptr(dbn.StatMsg_Size)))
		})

		It("RSize should agree with the _Size constants for fixed records", func() {
			Expect((&dbn.MboMsg{}).RSize()).To(Equal(dbn.MboMsg_Size))
			Expect((&dbn.Mbp0Msg{}).RSize()).To(Equal(dbn.Mbp0Msg_Size))
			Expect((&dbn.Mbp1Msg{}).RSize()).To(Equal(dbn.Mbp1Msg_Size))
			Expect((&dbn.Mbp10Msg{}).RSize()).To(Equal(dbn.Mbp10Msg_Size))
			Expect((&dbn.CbboMsg{}).RSize()).To(Equal(dbn.CbboMsg_Size))
			Expect((&dbn.OhlcvMsg{}).RSize()).To(Equal(dbn.OhlcvMsg_Size))
			Expect((&dbn.StatusMsg{}).RSize()).To(Equal(dbn.StatusMsg_Size))
			Expect((&dbn.ImbalanceMsg{}).RSize()).To(Equal(dbn.ImbalanceMsg_Size))
			Expect((&dbn.StatMsg{}).RSize()).To(Equal(dbn.StatMsg_Size))
		})
	})

	Context("Mbo messages", func() {
		It("round-trips through EncodeRecord/DecodeRecord", func() {
			orig := &dbn.MboMsg{
				Hdr:       dbn.RHeader{RType: dbn.RType_Mbo, PublisherID: 1, InstrumentID: 5482, TsEvent: 1609160400000000000},
				TsRecv:    1609160400000000100,
				OrderID:   123456789,
				Size:      10,
				Flags:     dbn.RFlag_LAST,
				ChannelID: 0,
				Action:    dbn.Action_Add,
				Side:      dbn.Side_Bid,
				Price:     dbn.FloatToPrice(3700.25),
				TsInDelta: 500,
				Sequence:  42,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())
			Expect(len(b)).To(Equal(dbn.MboMsg_Size))

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.MboMsg)
			Expect(ok).To(BeTrue())
			Expect(*got).To(Equal(*orig))
		})
	})

	Context("Trade (Mbp0) messages", func() {
		It("round-trips through EncodeRecord/DecodeRecord", func() {
			orig := &dbn.Mbp0Msg{
				Hdr:       dbn.RHeader{RType: dbn.RType_Mbp0, PublisherID: 1, InstrumentID: 5482, TsEvent: 1609160400000000000},
				Price:     dbn.FloatToPrice(3700.25),
				Size:      5,
				Action:    dbn.Action_Trade,
				Side:      dbn.Side_Ask,
				Flags:     dbn.RFlag_LAST,
				Depth:     0,
				TsRecv:    1609160400000000100,
				TsInDelta: 250,
				Sequence:  7,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.Mbp0Msg)
			Expect(ok).To(BeTrue())
			Expect(*got).To(Equal(*orig))
		})
	})

	Context("Mbp1/Tbbo messages", func() {
		It("round-trips its single book level", func() {
			orig := &dbn.Mbp1Msg{
				Hdr:    dbn.RHeader{RType: dbn.RType_Mbp1, InstrumentID: 5482, TsEvent: 1609160400000000000},
				Price:  dbn.FloatToPrice(3700.25),
				Size:   5,
				Action: dbn.Action_Trade,
				Side:   dbn.Side_Ask,
				TsRecv: 1609160400000000100,
				Levels: [1]dbn.BidAskPair{
					{BidPx: dbn.FloatToPrice(3700.00), AskPx: dbn.FloatToPrice(3700.25), BidSz: 3, AskSz: 4, BidCt: 1, AskCt: 1},
				},
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.Mbp1Msg)
			Expect(ok).To(BeTrue())
			Expect(*got).To(Equal(*orig))
		})
	})

	Context("Mbp10 messages", func() {
		It("round-trips all ten book levels", func() {
			var levels [10]dbn.BidAskPair
			for i := range levels {
				levels[i] = dbn.BidAskPair{
					BidPx: dbn.FloatToPrice(3700.0 - float64(i)*0.25),
					AskPx: dbn.FloatToPrice(3700.25 + float64(i)*0.25),
					BidSz: uint32(i + 1),
					AskSz: uint32(i + 2),
				}
			}
			orig := &dbn.Mbp10Msg{
				Hdr:    dbn.RHeader{RType: dbn.RType_Mbp10, InstrumentID: 5482, TsEvent: 1609160400000000000},
				Price:  dbn.FloatToPrice(3700.25),
				Size:   5,
				Levels: levels,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.Mbp10Msg)
			Expect(ok).To(BeTrue())
			Expect(*got).To(Equal(*orig))
		})
	})

	Context("Cbbo family messages", func() {
		It("preserves the specific rtype across the family's six members", func() {
			for _, rtype := range []dbn.RType{dbn.RType_Cbbo, dbn.RType_Cbbo1S, dbn.RType_Cbbo1M, dbn.RType_Tcbbo, dbn.RType_Bbo1S, dbn.RType_Bbo1M} {
				orig := &dbn.CbboMsg{
					Hdr:   dbn.RHeader{RType: rtype, InstrumentID: 5482, TsEvent: 1609160400000000000},
					Price: dbn.FloatToPrice(100.5),
					Size:  1,
				}
				b, err := dbn.EncodeRecord(orig)
				Expect(err).To(BeNil())

				decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
				Expect(err).To(BeNil())
				got, ok := decoded.(*dbn.CbboMsg)
				Expect(ok).To(BeTrue())
				Expect(got.Hdr.RType).To(Equal(rtype))
			}
		})
	})

	Context("Ohlcv messages", func() {
		It("round-trips for each cadence's rtype", func() {
			for _, rtype := range []dbn.RType{dbn.RType_Ohlcv1S, dbn.RType_Ohlcv1M, dbn.RType_Ohlcv1H, dbn.RType_Ohlcv1D, dbn.RType_OhlcvEod} {
				orig := &dbn.OhlcvMsg{
					Hdr:    dbn.RHeader{RType: rtype, InstrumentID: 5482, TsEvent: 1609160400000000000},
					Open:   dbn.FloatToPrice(3700.00),
					High:   dbn.FloatToPrice(3701.00),
					Low:    dbn.FloatToPrice(3699.00),
					Close:  dbn.FloatToPrice(3700.50),
					Volume: 1000,
				}
				b, err := dbn.EncodeRecord(orig)
				Expect(err).To(BeNil())

				decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
				Expect(err).To(BeNil())
				got, ok := decoded.(*dbn.OhlcvMsg)
				Expect(ok).To(BeTrue())
				Expect(*got).To(Equal(*orig))
			}
		})
	})

	Context("Status messages", func() {
		It("round-trips through EncodeRecord/DecodeRecord", func() {
			orig := &dbn.StatusMsg{
				Hdr:          dbn.RHeader{RType: dbn.RType_Status, InstrumentID: 5482, TsEvent: 1609160400000000000},
				TsRecv:       1609160400000000100,
				Action:       dbn.StatusAction_Trading,
				Reason:       dbn.StatusReason_Scheduled,
				TradingEvent: dbn.TradingEvent_None,
				IsTrading:    dbn.TriState_Yes,
				IsQuoting:    dbn.TriState_Yes,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.StatusMsg)
			Expect(ok).To(BeTrue())
			Expect(*got).To(Equal(*orig))
		})
	})

	Context("Imbalance messages", func() {
		It("round-trips through EncodeRecord/DecodeRecord", func() {
			orig := &dbn.ImbalanceMsg{
				Hdr:                  dbn.RHeader{RType: dbn.RType_Imbalance, InstrumentID: 5482, TsEvent: 1609160400000000000},
				TsRecv:               1609160400000000100,
				RefPrice:             dbn.FloatToPrice(100.0),
				AuctionTime:          1609160400000000000,
				PairedQty:            100,
				TotalImbalanceQty:    50,
				UnpairedQty:          -50,
				AuctionType:          'O',
				Side:                 dbn.Side_Bid,
				SignificantImbalance: dbn.TriState_No,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.ImbalanceMsg)
			Expect(ok).To(BeTrue())
			Expect(*got).To(Equal(*orig))
		})
	})

	Context("Statistics messages", func() {
		It("round-trips a defined quantity", func() {
			orig := &dbn.StatMsg{
				Hdr:          dbn.RHeader{RType: dbn.RType_Statistics, InstrumentID: 5482, TsEvent: 1609160400000000000},
				TsRecv:       1609160400000000100,
				TsRef:        dbn.UndefinedTimestamp,
				Price:        dbn.FloatToPrice(3700.00),
				Quantity:     500,
				StatType:     dbn.StatType_SettlementPrice,
				UpdateAction: dbn.StatUpdateAction_New,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.StatMsg)
			Expect(ok).To(BeTrue())
			Expect(*got).To(Equal(*orig))
		})

		It("preserves the undefined-quantity sentinel", func() {
			orig := &dbn.StatMsg{
				Hdr:      dbn.RHeader{RType: dbn.RType_Statistics, InstrumentID: 5482},
				Quantity: dbn.UndefinedStatQuantity,
				StatType: dbn.StatType_OpenInterest,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got := decoded.(*dbn.StatMsg)
			Expect(got.Quantity).To(Equal(dbn.UndefinedStatQuantity))
		})
	})

	Context("Error messages", func() {
		It("round-trips a variable-length error string", func() {
			orig := &dbn.ErrorMsg{
				Hdr: dbn.RHeader{RType: dbn.RType_Error},
				Err: "symbology resolution failed",
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())
			Expect(len(b) % 4).To(Equal(0))

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got := decoded.(*dbn.ErrorMsg)
			Expect(got.Err).To(Equal(orig.Err))
		})
	})

	Context("System messages", func() {
		It("round-trips msg and code when both are present", func() {
			orig := &dbn.SystemMsg{
				Hdr:  dbn.RHeader{RType: dbn.RType_System},
				Msg:  "heartbeat",
				Code: "HB",
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got := decoded.(*dbn.SystemMsg)
			Expect(got.Msg).To(Equal("heartbeat"))
			Expect(got.Code).To(Equal("HB"))
		})

		It("round-trips msg alone when code is absent", func() {
			orig := &dbn.SystemMsg{
				Hdr: dbn.RHeader{RType: dbn.RType_System},
				Msg: "heartbeat",
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got := decoded.(*dbn.SystemMsg)
			Expect(got.Msg).To(Equal("heartbeat"))
			Expect(got.Code).To(Equal(""))
		})
	})

	Context("Symbol mapping messages", func() {
		It("round-trips through EncodeRecord/DecodeRecord", func() {
			orig := &dbn.SymbolMappingMsg{
				Hdr:            dbn.RHeader{RType: dbn.RType_SymbolMapping, InstrumentID: 5482},
				StypeIn:        dbn.SType_RawSymbol,
				StypeInSymbol:  "ESH1",
				StypeOut:       dbn.SType_InstrumentId,
				StypeOutSymbol: "5482",
				StartTs:        1609160400000000000,
				EndTs:          1609200000000000000,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())
			Expect(len(b) % 4).To(Equal(0))

			decoded, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got := decoded.(*dbn.SymbolMappingMsg)
			Expect(*got).To(Equal(*orig))
		})
	})

	Context("Instrument definition messages", func() {
		It("round-trips a version-2 layout with no leg tail", func() {
			orig := &dbn.InstrumentDefMsg{
				Hdr:                   dbn.RHeader{RType: dbn.RType_InstrumentDef, InstrumentID: 5482},
				Version:               2,
				TsRecv:                1609160400000000100,
				MinPriceIncrement:     dbn.FloatToPrice(0.25),
				RawSymbol:             "ESH1",
				Exchange:              "XCME",
				Asset:                 "ES",
				Currency:              "USD",
				InstrumentClass:       dbn.InstrumentClass_Future,
				MatchAlgorithm:        dbn.MatchAlgorithm_Fifo,
				SecurityUpdateAction:  dbn.SecurityUpdateAction_Add,
				UserDefinedInstrument: dbn.UserDefinedInstrument_No,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())
			Expect(len(b)).To(Equal(dbn.InstrumentDefV2_Size))

			decoded, _, err := dbn.DecodeRecord(b, 2)
			Expect(err).To(BeNil())
			got := decoded.(*dbn.InstrumentDefMsg)
			Expect(got.Legs).To(BeEmpty())
			Expect(got.RawSymbol).To(Equal("ESH1"))
			Expect(got.Exchange).To(Equal("XCME"))
		})

		It("round-trips a version-3 layout with its leg tail", func() {
			orig := &dbn.InstrumentDefMsg{
				Hdr:                   dbn.RHeader{RType: dbn.RType_InstrumentDef, InstrumentID: 5483},
				Version:               3,
				TsRecv:                1609160400000000100,
				RawSymbol:             "ESH1-ESM1",
				Exchange:              "XCME",
				InstrumentClass:       dbn.InstrumentClass_FutureSpread,
				MatchAlgorithm:        dbn.MatchAlgorithm_Fifo,
				SecurityUpdateAction:  dbn.SecurityUpdateAction_Add,
				UserDefinedInstrument: dbn.UserDefinedInstrument_No,
				Legs: []dbn.InstrumentDefLegs{
					{
						LegPrice:        dbn.FloatToPrice(3700.25),
						LegInstrumentID: 5482,
						LegRawSymbol:    "ESH1",
						LegSide:         dbn.Side_Bid,
						LegCount:        1,
					},
				},
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())
			Expect(len(b)).To(Equal(dbn.InstrumentDefV3_Size))

			decoded, _, err := dbn.DecodeRecord(b, 3)
			Expect(err).To(BeNil())
			got := decoded.(*dbn.InstrumentDefMsg)
			Expect(got.Legs).To(HaveLen(1))
			Expect(got.Legs[0].LegInstrumentID).To(Equal(uint32(5482)))
			Expect(got.Legs[0].LegRawSymbol).To(Equal("ESH1"))
		})
	})

	Context("unrecognized rtype", func() {
		It("fails DecodeRecord but IsKnownRType reports it as not known", func() {
			Expect(dbn.IsKnownRType(dbn.RType_Unknown)).To(BeFalse())

			b := make([]byte, dbn.RHeaderSize)
			b[0] = uint8(dbn.RHeaderSize / 4)
			b[1] = uint8(dbn.RType_Unknown)
			_, _, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).ToNot(BeNil())
		})
	})

	Context("unrecognized enum bytes", func() {
		It("substitutes Action_Trade and emits a diagnostic for an unrecognized action byte", func() {
			orig := &dbn.Mbp0Msg{
				Hdr:    dbn.RHeader{RType: dbn.RType_Mbp0, InstrumentID: 5482, TsEvent: 1609160400000000000},
				Price:  dbn.FloatToPrice(3700.25),
				Size:   5,
				Action: dbn.Action_Trade,
				Side:   dbn.Side_Ask,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())
			b[dbn.RHeaderSize+12] = 'Z' // not a recognized Action byte

			decoded, diags, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.Mbp0Msg)
			Expect(ok).To(BeTrue())
			Expect(got.Action).To(Equal(dbn.Action_Trade))
			Expect(diags).To(HaveLen(1))
			Expect(diags[0].Field).To(Equal("action"))
			Expect(diags[0].Got).To(Equal(byte('Z')))
		})

		It("substitutes Side_None and emits a diagnostic for an unrecognized side byte", func() {
			orig := &dbn.MboMsg{
				Hdr:     dbn.RHeader{RType: dbn.RType_Mbo, InstrumentID: 5482, TsEvent: 1609160400000000000},
				OrderID: 1,
				Action:  dbn.Action_Add,
				Side:    dbn.Side_Bid,
				Price:   dbn.FloatToPrice(100.0),
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())
			b[dbn.RHeaderSize+23] = '?' // not a recognized Side byte

			decoded, diags, err := dbn.DecodeRecord(b, dbn.MaxSupportedVersion)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.MboMsg)
			Expect(ok).To(BeTrue())
			Expect(got.Side).To(Equal(dbn.Side_None))
			Expect(diags).To(HaveLen(1))
			Expect(diags[0].Field).To(Equal("side"))
			Expect(diags[0].Got).To(Equal(byte('?')))
		})

		It("substitutes InstrumentClass_Other and emits a diagnostic for an unrecognized class byte", func() {
			orig := &dbn.InstrumentDefMsg{
				Hdr:                   dbn.RHeader{RType: dbn.RType_InstrumentDef, InstrumentID: 5482},
				Version:               2,
				RawSymbol:             "ESH1",
				InstrumentClass:       dbn.InstrumentClass_Future,
				MatchAlgorithm:        dbn.MatchAlgorithm_Fifo,
				SecurityUpdateAction:  dbn.SecurityUpdateAction_Add,
				UserDefinedInstrument: dbn.UserDefinedInstrument_No,
			}
			b, err := dbn.EncodeRecord(orig)
			Expect(err).To(BeNil())
			// InstrumentClass is the first byte of the trailing 1-byte
			// group, 111 bytes into the body for a v2 record.
			classOffset := dbn.RHeaderSize + 111
			b[classOffset] = '~' // not a recognized InstrumentClass byte

			decoded, diags, err := dbn.DecodeRecord(b, 2)
			Expect(err).To(BeNil())
			got, ok := decoded.(*dbn.InstrumentDefMsg)
			Expect(ok).To(BeTrue())
			Expect(got.InstrumentClass).To(Equal(dbn.InstrumentClass_Other))
			Expect(diags).To(HaveLen(1))
			Expect(diags[0].Field).To(Equal("instrument_class"))
			Expect(diags[0].Got).To(Equal(byte('~')))
		})
	})
})
