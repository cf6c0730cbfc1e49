// Package header implements the static model's header codec: the
// (symbol, scaled_count) records written immediately after the encoder
// opens its output, which let the decoder rebuild the exact probability
// table used to encode the file without storing it out of band.
package header

import (
	"fmt"

	"github.com/mdipperstein/arcode/internal/bitstream"
	"github.com/mdipperstein/arcode/model"
)

// ErrMalformedHeader is returned when the header contains more than one
// record for the same symbol.
var ErrMalformedHeader = fmt.Errorf("header: duplicate entry for symbol")

// Write serializes t's per-symbol counts as (symbol, count) pairs,
// terminated by a zero-count record for symbol 0x00.
func Write(w *bitstream.Writer, t *model.Table) error {
	for c := 0; c < 256; c++ {
		lo, hi := t.RangeOf(c)
		k := hi - lo
		if k == 0 {
			continue
		}
		if err := w.PutChar(byte(c)); err != nil {
			return err
		}
		if err := w.PutBits(uint64(k), model.HeaderCountBits); err != nil {
			return err
		}
	}

	if err := w.PutChar(0); err != nil {
		return err
	}
	return w.PutBits(0, model.HeaderCountBits)
}

// Read deserializes a header written by Write, returning the reconstructed
// probability table. A zero-count record always ends the header, even if
// its symbol byte collides with a previously-seen nonzero entry.
func Read(r *bitstream.Reader) (*model.Table, error) {
	var counts [256]uint32
	var seen [256]bool

	for {
		c, err := r.GetChar()
		if err != nil {
			return nil, err
		}
		count, err := r.GetBits(model.HeaderCountBits)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			break
		}
		if seen[c] {
			return nil, ErrMalformedHeader
		}
		seen[c] = true
		counts[c] = uint32(count)
	}

	return model.FromCounts(counts), nil
}
