// Copyright (c) 2024 Neomantra Corp

package dbn_test

import (
	"math"
	"time"

	dbn "github.com/neomantra/dbncodec"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Helpers", func() {
	Context("fixed-point price conversion", func() {
		It("converts fixed9 to float correctly", func() {
			Expect(dbn.Fixed9ToFloat64(1234567890123456789)).To(Equal(float64(1234567890.123456789)))
		})
		It("round-trips a typical price through float and back", func() {
			price := int64(57_250_000_000) // 57.25
			Expect(dbn.PriceToFloat(price)).To(Equal(57.25))
			Expect(dbn.FloatToPrice(57.25)).To(Equal(price))
		})
		It("maps the undefined price sentinel to NaN and back", func() {
			Expect(math.IsNaN(dbn.PriceToFloat(dbn.UndefinedPrice))).To(BeTrue())
			Expect(dbn.FloatToPrice(math.NaN())).To(Equal(dbn.UndefinedPrice))
			Expect(dbn.FloatToPrice(math.Inf(1))).To(Equal(dbn.UndefinedPrice))
		})
	})

	Context("NUL-terminated strings", func() {
		It("trims trailing NUL bytes", func() {
			Expect(dbn.TrimNullBytes([]byte("ESH1\x00\x00\x00"))).To(Equal("ESH1"))
			Expect(dbn.TrimNullBytes([]byte("\x00\x00\x00"))).To(Equal(""))
		})
	})

	Context("timestamp conversion", func() {
		It("converts a DBN nanosecond timestamp to time.Time", func() {
			ts := uint64(1609160400123456789)
			tm := dbn.TimestampToTime(ts)
			Expect(tm.Unix()).To(Equal(int64(1609160400)))
			Expect(tm.Nanosecond()).To(Equal(123456789))
		})
		It("reports the undefined timestamp sentinel", func() {
			_, ok := dbn.TsToDatetime(dbn.UndefinedTimestamp)
			Expect(ok).To(BeFalse())
		})
		It("round-trips a datetime through DatetimeToTs/TsToDatetime", func() {
			t := time.Date(2024, time.March, 5, 13, 30, 0, 0, time.UTC)
			ts := dbn.DatetimeToTs(t, 0)
			got, ok := dbn.TsToDatetime(ts)
			Expect(ok).To(BeTrue())
			Expect(got.Unix()).To(Equal(t.Unix()))
		})
	})

	Context("YMD conversion", func() {
		It("converts a time.Time to YYYYMMDD and back", func() {
			t := time.Date(2020, time.December, 28, 0, 0, 0, 0, time.UTC)
			ymd := dbn.TimeToYMD(t)
			Expect(ymd).To(Equal(uint32(20201228)))
			back := dbn.YMDToTime(int(ymd), time.UTC)
			Expect(back.Year()).To(Equal(2020))
			Expect(back.Month()).To(Equal(time.December))
			Expect(back.Day()).To(Equal(28))
		})
		It("returns the zero time for a zero YMD", func() {
			Expect(dbn.TimeToYMD(time.Time{})).To(Equal(uint32(0)))
			Expect(dbn.YMDToTime(0, time.UTC).IsZero()).To(BeTrue())
		})
	})
})
