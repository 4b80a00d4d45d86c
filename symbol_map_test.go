// Copyright (c) 2024 Neomantra Corp

package dbn_test

import (
	"time"

	dbn "github.com/neomantra/dbncodec"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TsSymbolMap", func() {
	It("expands a mapping across its day range and answers Get per calendar day", func() {
		m := &dbn.Metadata{
			StypeIn:  dbn.SType_RawSymbol,
			StypeOut: dbn.SType_InstrumentId,
			Mappings: []dbn.SymbolMapping{
				{RawSymbol: "ESH1", MappedSymbol: "5482", StartDate: 20201228, EndDate: 20201231},
			},
		}
		tsm := dbn.NewTsSymbolMap()
		Expect(tsm.IsEmpty()).To(BeTrue())
		Expect(tsm.FillFromMetadata(m)).To(Succeed())
		Expect(tsm.IsEmpty()).To(BeFalse())
		Expect(tsm.Len()).To(Equal(3))

		Expect(tsm.Get(time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC), 5482)).To(Equal("ESH1"))
		Expect(tsm.Get(time.Date(2020, 12, 30, 0, 0, 0, 0, time.UTC), 5482)).To(Equal("ESH1"))
		Expect(tsm.Get(time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), 5482)).To(Equal(""))
		Expect(tsm.Get(time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC), 9999)).To(Equal(""))
	})

	It("uses raw_symbol as the instrument ID when stype_in is instrument_id", func() {
		m := &dbn.Metadata{
			StypeIn:  dbn.SType_InstrumentId,
			StypeOut: dbn.SType_RawSymbol,
			Mappings: []dbn.SymbolMapping{
				{RawSymbol: "5482", MappedSymbol: "ESH1", StartDate: 20201228, EndDate: 20201229},
			},
		}
		tsm := dbn.NewTsSymbolMap()
		Expect(tsm.FillFromMetadata(m)).To(Succeed())
		Expect(tsm.Get(time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC), 5482)).To(Equal("ESH1"))
	})
})

var _ = Describe("PitSymbolMap", func() {
	It("tracks the instrument_id -> symbol mapping from live SymbolMappingMsg records", func() {
		p := dbn.NewPitSymbolMap()
		Expect(p.IsEmpty()).To(BeTrue())

		err := p.OnSymbolMappingMsg(&dbn.SymbolMappingMsg{
			Hdr:            dbn.RHeader{InstrumentID: 5482},
			StypeOutSymbol: "ESH1",
		})
		Expect(err).To(BeNil())
		Expect(p.IsEmpty()).To(BeFalse())
		Expect(p.Len()).To(Equal(1))
		Expect(p.Get(5482)).To(Equal("ESH1"))
	})

	It("overwrites a prior mapping for the same instrument", func() {
		p := dbn.NewPitSymbolMap()
		Expect(p.OnSymbolMappingMsg(&dbn.SymbolMappingMsg{Hdr: dbn.RHeader{InstrumentID: 5482}, StypeOutSymbol: "ESH1"})).To(Succeed())
		Expect(p.OnSymbolMappingMsg(&dbn.SymbolMappingMsg{Hdr: dbn.RHeader{InstrumentID: 5482}, StypeOutSymbol: "ESM1"})).To(Succeed())
		Expect(p.Get(5482)).To(Equal("ESM1"))
		Expect(p.Len()).To(Equal(1))
	})

	It("fills from metadata at a timestamp within [start_ts, end_ts)", func() {
		m := &dbn.Metadata{
			StypeIn:  dbn.SType_RawSymbol,
			StypeOut: dbn.SType_InstrumentId,
			StartTs:  1609160400000000000,
			EndTs:    1609200000000000000,
			Mappings: []dbn.SymbolMapping{
				{RawSymbol: "ESH1", MappedSymbol: "5482", StartDate: 20201228, EndDate: 20201229},
			},
		}
		p := dbn.NewPitSymbolMap()
		Expect(p.FillFromMetadata(m, 1609161000000000000)).To(Succeed())
		Expect(p.Get(5482)).To(Equal("ESH1"))
	})

	It("fails with ErrDateOutsideQueryRange outside [start_ts, end_ts)", func() {
		m := &dbn.Metadata{
			StypeIn: dbn.SType_RawSymbol, StypeOut: dbn.SType_InstrumentId,
			StartTs: 1609160400000000000, EndTs: 1609200000000000000,
		}
		p := dbn.NewPitSymbolMap()
		err := p.FillFromMetadata(m, 1609000000000000000)
		Expect(err).To(Equal(dbn.ErrDateOutsideQueryRange))
	})

	It("fails with ErrWrongStypesForMapping unless exactly one side is instrument_id", func() {
		p := dbn.NewPitSymbolMap()
		err := p.FillFromMetadata(&dbn.Metadata{StypeIn: dbn.SType_RawSymbol, StypeOut: dbn.SType_Smart}, 0)
		Expect(err).To(Equal(dbn.ErrWrongStypesForMapping))

		err = p.FillFromMetadata(&dbn.Metadata{StypeIn: dbn.SType_InstrumentId, StypeOut: dbn.SType_InstrumentId}, 0)
		Expect(err).To(Equal(dbn.ErrWrongStypesForMapping))
	})
})
