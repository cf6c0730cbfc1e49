// Package model implements the cumulative-frequency probability table shared
// by the static and adaptive arithmetic coding models described in
// Dipperstein's arcode: a 257-symbol alphabet (byte values 0-255 plus an EOF
// sentinel at index 256), represented as a non-decreasing array of
// cumulative bounds.
package model

import "fmt"

const (
	// Precision is the fixed bit width of lower, upper, code and all
	// derived masks used by the engine package.
	Precision = 16

	// Top is the initial upper bound, the all-ones Precision-bit value.
	Top = (uint32(1) << Precision) - 1

	// MSB masks the most significant bit of a Precision-bit value.
	MSB = uint32(1) << (Precision - 1)

	// SMSB masks the second most significant bit of a Precision-bit value.
	SMSB = uint32(1) << (Precision - 2)

	// MSBClear masks off the most significant bit.
	MSBClear = MSB - 1

	// MaxCum is the largest cumulative probability the table may hold.
	// Keeping cum_total below this bound is what keeps lower and upper
	// from crossing during narrowing.
	MaxCum = uint32(1) << (Precision - 2)

	// HeaderCountBits is the width of the scaled count field written by
	// the header codec for each symbol.
	HeaderCountBits = Precision - 2

	// EOF is the alphabet index of the end-of-stream sentinel.
	EOF = 256

	// numSlots is len(R): indices 0..257 inclusive.
	numSlots = EOF + 2
)

// ErrRangeLookup is returned by SymbolOf when no symbol's range covers the
// requested cumulative value, which indicates a corrupt encoded stream.
var ErrRangeLookup = fmt.Errorf("model: probability not within any symbol range")

// Table is a cumulative-frequency table: R[s] is the lower cumulative bound
// of symbol s, and R[s+1] is its upper bound. Symbol EOF (256) is always
// present with R[257]-R[256] >= 1.
type Table struct {
	r        [numSlots]uint32
	cumTotal uint32
}

// NewStaticTable builds the probability table for the static model from a
// first-pass tally of byte frequencies in counts. If the total frequency
// would exceed MaxCum, every nonzero count is rescaled down (floor
// division, with a minimum of 1) so that every observed symbol survives.
func NewStaticTable(counts [256]uint32) *Table {
	var total uint64
	for _, c := range counts {
		total += uint64(c)
	}

	if total >= uint64(MaxCum) {
		rescale := total/uint64(MaxCum) + 1
		for i, c := range counts {
			if c == 0 {
				continue
			}
			if uint64(c) > rescale {
				counts[i] = uint32(uint64(c) / rescale)
			} else {
				counts[i] = 1
			}
		}
	}

	return FromCounts(counts)
}

// FromCounts builds a finalized table from per-symbol scaled counts (byte
// values 0-255 only; EOF always gets a count of 1). It is shared by the
// static builder, once rescaling is done, and by the header codec, whose
// counts are already scaled.
func FromCounts(counts [256]uint32) *Table {
	t := &Table{}
	t.r[0] = 0
	for c := 0; c < 256; c++ {
		t.r[c+1] = counts[c]
	}
	t.r[EOF+1] = 1 // EOF gets a provisional count of 1

	for c := 0; c <= EOF; c++ {
		t.r[c+1] += t.r[c]
	}
	t.cumTotal = t.r[EOF+1]
	return t
}

// NewAdaptiveTable returns the initial table for the adaptive model: every
// symbol, including EOF, starts with a count of 1.
func NewAdaptiveTable() *Table {
	t := &Table{}
	for i := range t.r {
		t.r[i] = uint32(i)
	}
	t.cumTotal = EOF + 1
	return t
}

// CumTotal returns the current total cumulative probability, R[257].
func (t *Table) CumTotal() uint32 {
	return t.cumTotal
}

// RangeOf returns the half-open cumulative range [lo, hi) occupied by
// symbol s.
func (t *Table) RangeOf(s int) (lo, hi uint32) {
	return t.r[s], t.r[s+1]
}

// SymbolOf performs a binary search over the cumulative table for the
// unique symbol s such that R[s] <= target < R[s+1].
func (t *Table) SymbolOf(target uint32) (int, error) {
	first, last := 0, EOF
	middle := last / 2

	for last >= first {
		if target < t.r[middle] {
			last = middle - 1
			middle = first + (last-first)/2
		} else if target >= t.r[middle+1] {
			first = middle + 1
			middle = first + (last-first)/2
		} else {
			return middle, nil
		}
	}
	return 0, ErrRangeLookup
}

// Observe updates the adaptive model after symbol s has been coded,
// rescaling the table once cum_total reaches MaxCum.
func (t *Table) Observe(s int) {
	for i := s + 1; i <= EOF+1; i++ {
		t.r[i]++
	}
	t.cumTotal++

	if t.cumTotal >= MaxCum {
		t.rescale()
	}
}

// rescale halves every symbol's count while guaranteeing that no symbol's
// count is driven to zero, per the adaptive model's periodic rescale rule.
func (t *Table) rescale() {
	var original uint32
	for i := 1; i <= EOF+1; i++ {
		delta := t.r[i] - original
		original = t.r[i]

		if delta <= 2 {
			t.r[i] = t.r[i-1] + 1
		} else {
			t.r[i] = t.r[i-1] + delta/2
		}
	}
	t.cumTotal = t.r[EOF+1]
}
