// Copyright (c) 2024 Neomantra Corp
//
// Zero-allocation callback streaming (spec.md section 4.5).

package dbn

import "io"

// ForEachRecord streams r, decoding each known record of compile-time
// type T into a single reused T-sized buffer and invoking f with a
// pointer to it. f MUST NOT retain that pointer past its return — the
// same memory is overwritten on the next record (spec.md section 4.5).
//
// A record whose rtype doesn't match T is a decode error, with one
// exception: if T is OhlcvMsg, any OHLCV cadence is accepted (the
// cadences are unified at this API). Unknown rtypes are skipped
// silently, same as the pull iterator.
//
// InstrumentDefMsg cannot be used here: its FillRaw takes an extra
// version argument and so doesn't satisfy RecordPtr.
//
// ForEachRecord returns every diagnostic observed across the stream
// alongside the terminal error, since it never exposes its internal
// scanner for a caller to query separately (spec.md section 4.2).
func ForEachRecord[T any, TP RecordPtr[T]](r io.Reader, f func(*T) error) ([]Diagnostic, error) {
	scanner := NewDbnScanner(r)
	var rec T
	var rp TP = &rec
	var diagnostics []Diagnostic

	for scanner.Next() {
		rtype := RType(scanner.lastRecord[1])
		if !IsKnownRType(rtype) {
			continue
		}

		compatible := rtype.IsCompatibleWith(rp.RType())
		if !compatible {
			if _, isOhlcv := any(rp).(*OhlcvMsg); isOhlcv && rtype.IsCandle() {
				compatible = true
			}
		}
		if !compatible {
			return diagnostics, unexpectedRTypeError(rtype, rp.RType())
		}

		diags, err := rp.FillRaw(scanner.GetLastRecord())
		diagnostics = append(diagnostics, diags...)
		if err != nil {
			return diagnostics, err
		}
		if err := f(&rec); err != nil {
			return diagnostics, err
		}
	}
	if err := scanner.Error(); err != nil && err != io.EOF {
		return diagnostics, err
	}
	return diagnostics, nil
}
