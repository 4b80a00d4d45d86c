// Copyright (c) 2024 Neomantra Corp
//
// Instrument-ID/symbol maps, adapted from the teacher's symbol_map.go
// (spec.md section 4.2, "first-interval-only retention").

package dbn

import (
	"strconv"
	"time"
)

type tsSymbolKey struct {
	Date uint32 // YMD date.
	ID   uint32
}

// TsSymbolMap is a timeseries symbol map, keyed by calendar day plus
// instrument ID. Typically built from a stream's Metadata for working
// with historical data spanning multiple mapping intervals.
type TsSymbolMap struct {
	symbolMap map[tsSymbolKey]string
}

// NewTsSymbolMap returns an empty TsSymbolMap.
func NewTsSymbolMap() *TsSymbolMap {
	return &TsSymbolMap{symbolMap: make(map[tsSymbolKey]string)}
}

// IsEmpty reports whether the map holds no mappings.
func (tsm *TsSymbolMap) IsEmpty() bool {
	return len(tsm.symbolMap) == 0
}

// Len returns the number of (day, instrument) mappings.
func (tsm *TsSymbolMap) Len() int {
	return len(tsm.symbolMap)
}

// Get returns the symbol mapped to instrID on dt's calendar day, or "" if
// none.
func (tsm *TsSymbolMap) Get(dt time.Time, instrID uint32) string {
	key := tsSymbolKey{Date: TimeToYMD(dt), ID: instrID}
	return tsm.symbolMap[key]
}

// FillFromMetadata replaces the map's contents with every mapping in
// metadata, expanded across their [start_date, end_date) day ranges.
// Since metadata.Mappings already retains only the first interval per
// symbol (spec.md section 4.2), each entry contributes one contiguous
// range.
func (tsm *TsSymbolMap) FillFromMetadata(metadata *Metadata) error {
	tsm.symbolMap = make(map[tsSymbolKey]string)

	inverse := metadata.StypeOut == SType_InstrumentId
	for _, mapping := range metadata.Mappings {
		if mapping.MappedSymbol == "" {
			continue
		}
		if inverse {
			instrID, err := strconv.Atoi(mapping.MappedSymbol)
			if err != nil {
				return err
			}
			if err := tsm.Insert(uint32(instrID), mapping.StartDate, mapping.EndDate, mapping.RawSymbol); err != nil {
				return err
			}
		} else {
			instrID, err := strconv.Atoi(mapping.RawSymbol)
			if err != nil {
				return err
			}
			if err := tsm.Insert(uint32(instrID), mapping.StartDate, mapping.EndDate, mapping.MappedSymbol); err != nil {
				return err
			}
		}
	}
	return nil
}

// Insert adds a mapping for every calendar day in [startDate, endDate),
// both given as YYYYMMDD integers.
func (tsm *TsSymbolMap) Insert(instrID uint32, startDate, endDate uint32, symbol string) error {
	start := YMDToTime(int(startDate), time.UTC)
	end := YMDToTime(int(endDate), time.UTC)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		tsm.symbolMap[tsSymbolKey{Date: TimeToYMD(d), ID: instrID}] = symbol
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////

// PitSymbolMap is a point-in-time symbol map: a single instrument_id<->symbol
// mapping valid for one moment, kept current as SymbolMappingMsg records
// arrive during a live or single-day session (spec.md section 4.3,
// SymbolMappingMsg).
type PitSymbolMap struct {
	mapping    map[uint32]string
	mappingInv map[string]uint32
}

// NewPitSymbolMap returns an empty PitSymbolMap.
func NewPitSymbolMap() *PitSymbolMap {
	return &PitSymbolMap{
		mapping:    make(map[uint32]string),
		mappingInv: make(map[string]uint32),
	}
}

// IsEmpty reports whether the map holds no mappings.
func (p *PitSymbolMap) IsEmpty() bool {
	return len(p.mapping) == 0
}

// Len returns the number of instrument mappings.
func (p *PitSymbolMap) Len() int {
	return len(p.mapping)
}

// Get returns the symbol mapped to instrumentID, or "" if none.
func (p *PitSymbolMap) Get(instrumentID uint32) string {
	return p.mapping[instrumentID]
}

// OnSymbolMappingMsg applies a live SymbolMappingMsg's instrument_id ->
// stype_out_symbol mapping, overwriting any prior entry for that ID.
func (p *PitSymbolMap) OnSymbolMappingMsg(symbolMapping *SymbolMappingMsg) error {
	p.mapping[symbolMapping.Hdr.InstrumentID] = symbolMapping.StypeOutSymbol
	p.mappingInv[symbolMapping.StypeOutSymbol] = symbolMapping.Hdr.InstrumentID
	return nil
}

// FillFromMetadata replaces the map's contents with metadata's mappings
// as they stand at timestamp (a DBN nanosecond timestamp), clearing any
// prior contents. It fails with ErrWrongStypesForMapping unless exactly
// one of stype_in/stype_out is instrument_id, and with
// ErrDateOutsideQueryRange if timestamp falls outside [start_ts, end_ts).
func (p *PitSymbolMap) FillFromMetadata(metadata *Metadata, timestamp uint64) error {
	inIsID := metadata.StypeIn == SType_InstrumentId
	outIsID := metadata.StypeOut == SType_InstrumentId
	if inIsID == outIsID {
		return ErrWrongStypesForMapping
	}
	ts := int64(timestamp)
	if ts < metadata.StartTs || (metadata.HasEndTs() && ts >= metadata.EndTs) {
		return ErrDateOutsideQueryRange
	}
	ymd := TimeToYMD(TimestampToTime(timestamp))

	p.mapping = make(map[uint32]string, len(metadata.Mappings))
	p.mappingInv = make(map[string]uint32, len(metadata.Mappings))

	for _, mapping := range metadata.Mappings {
		if ymd < mapping.StartDate || ymd >= mapping.EndDate {
			continue
		}
		if mapping.MappedSymbol == "" {
			continue
		}
		if outIsID {
			instrID, err := strconv.Atoi(mapping.MappedSymbol)
			if err != nil {
				return err
			}
			p.mapping[uint32(instrID)] = mapping.RawSymbol
			p.mappingInv[mapping.RawSymbol] = uint32(instrID)
		} else {
			instrID, err := strconv.Atoi(mapping.RawSymbol)
			if err != nil {
				return err
			}
			p.mapping[uint32(instrID)] = mapping.MappedSymbol
			p.mappingInv[mapping.MappedSymbol] = uint32(instrID)
		}
	}
	return nil
}
