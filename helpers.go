// Copyright (c) 2024 Neomantra Corp

package dbn

import (
	"bytes"
	"math"
	"time"
)

// FixedPriceScale is the denominator of DBN's fixed-point prices: every unit
// is 1e-9, i.e. 1/1,000,000,000.
const FixedPriceScale float64 = 1_000_000_000.0

// UndefinedPrice is the sentinel i64 meaning "price not set" (spec.md
// section 3, Glossary).
const UndefinedPrice int64 = math.MaxInt64

// UndefinedOrderSize is the sentinel u32 meaning "order size not set".
const UndefinedOrderSize uint32 = math.MaxUint32

// UndefinedStatQuantity is the sentinel u64 meaning "quantity not set" in a
// StatMsg; it MUST round-trip as this exact sentinel (spec.md section 3/8).
const UndefinedStatQuantity uint64 = math.MaxUint64

// UndefinedTimestamp is the sentinel i64 meaning "timestamp not set".
const UndefinedTimestamp int64 = math.MaxInt64

// Fixed9ToFloat64 converts a fixed-point DBN price to a float64, matching
// the teacher's helper of the same name.
func Fixed9ToFloat64(fixed int64) float64 {
	return float64(fixed) / FixedPriceScale
}

// PriceToFloat converts a fixed-point price to float64, returning NaN for
// the undefined-price sentinel (spec.md section 6, 8).
func PriceToFloat(price int64) float64 {
	if price == UndefinedPrice {
		return math.NaN()
	}
	return float64(price) / FixedPriceScale
}

// FloatToPrice converts a float64 to a fixed-point price, returning the
// undefined-price sentinel for NaN or an infinite input (spec.md section 6, 8).
func FloatToPrice(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return UndefinedPrice
	}
	return int64(math.Round(f * FixedPriceScale))
}

// TrimNullBytes removes trailing NUL bytes from a byte slice and returns the
// remainder as a string.
func TrimNullBytes(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}

// TimestampToSecNanos splits a DBN nanosecond timestamp into (seconds, nanos).
func TimestampToSecNanos(dbnTimestamp uint64) (int64, int64) {
	secs := int64(dbnTimestamp / 1e9)
	nanos := int64(dbnTimestamp) - secs*1e9
	return secs, nanos
}

// TimestampToTime converts a DBN nanosecond-since-epoch timestamp to a
// time.Time in UTC.
func TimestampToTime(dbnTimestamp uint64) time.Time {
	secs, nanos := TimestampToSecNanos(dbnTimestamp)
	return time.Unix(secs, nanos).UTC()
}

// TsToDatetime converts a signed DBN timestamp to a time.Time, returning
// false if ts is the undefined-timestamp sentinel (spec.md section 6).
func TsToDatetime(ts int64) (time.Time, bool) {
	if ts == UndefinedTimestamp {
		return time.Time{}, false
	}
	return time.Unix(0, ts).UTC(), true
}

// DatetimeToTs converts a time.Time plus an explicit nanosecond remainder
// into a signed DBN timestamp (spec.md section 6).
func DatetimeToTs(t time.Time, nanos int) int64 {
	return t.Unix()*1e9 + int64(nanos)
}

// TimeToYMD returns the YYYYMMDD representation of t in t's own location. A
// zero time.Time returns 0.
func TimeToYMD(t time.Time) uint32 {
	if t.IsZero() {
		return 0
	}
	return uint32(10000*t.Year() + 100*int(t.Month()) + t.Day())
}

// YMDToTime parses a YYYYMMDD integer as a date at midnight in loc.
func YMDToTime(ymd int, loc *time.Location) time.Time {
	if ymd == 0 {
		return time.Time{}
	}
	year := ymd / 10000
	month := (ymd / 100) % 100
	day := ymd % 100
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}
