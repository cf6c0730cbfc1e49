// Package engine implements the fixed-precision interval arithmetic at the
// heart of the arithmetic coder: narrowing the [lower, upper] interval to a
// symbol's cumulative range, and the E1/E2/E3 renormalization that keeps
// that interval's precision bounded while deferring underflow bits until
// their polarity is known.
package engine

import (
	"io"

	"github.com/mdipperstein/arcode/internal/bitstream"
	"github.com/mdipperstein/arcode/model"
)

// Encoder carries the interval-coder state for one encode pass.
type Encoder struct {
	lower     uint32
	upper     uint32
	underflow int

	w *bitstream.Writer
}

// NewEncoder returns an Encoder that writes its bit stream to w, with the
// interval initialized to the full [0, Top] range.
func NewEncoder(w *bitstream.Writer) *Encoder {
	return &Encoder{upper: model.Top, w: w}
}

// EncodeSymbol narrows the current interval to sym's cumulative range in t,
// then renormalizes, emitting bits as the interval's precision allows.
func (e *Encoder) EncodeSymbol(t *model.Table, sym int) error {
	lo, hi := t.RangeOf(sym)
	cum := uint64(t.CumTotal())

	width := uint64(e.upper-e.lower) + 1
	e.upper = e.lower + uint32(width*uint64(hi)/cum) - 1
	e.lower = e.lower + uint32(width*uint64(lo)/cum)

	return e.renormalize()
}

func (e *Encoder) renormalize() error {
	for {
		switch {
		case (e.upper ^ ^e.lower)&model.MSB != 0:
			bit := 0
			if e.upper&model.MSB != 0 {
				bit = 1
			}
			if err := e.putBitPlusFollow(bit); err != nil {
				return err
			}
		case (^e.upper&e.lower)&model.SMSB != 0:
			e.underflow++
			e.lower &^= model.MSB | model.SMSB
			e.upper |= model.SMSB
		default:
			return nil
		}

		e.lower = (e.lower & model.MSBClear) << 1
		e.upper = ((e.upper & model.MSBClear) << 1) | 1
	}
}

func (e *Encoder) putBitPlusFollow(bit int) error {
	if err := e.w.PutBit(bit); err != nil {
		return err
	}
	negbit := 1 - bit
	for ; e.underflow > 0; e.underflow-- {
		if err := e.w.PutBit(negbit); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the bits needed to disambiguate the final interval once the
// EOF sentinel has been encoded and renormalized. It must be called exactly
// once, after the last EncodeSymbol call.
func (e *Encoder) Flush() error {
	bit := 0
	if e.lower&model.SMSB != 0 {
		bit = 1
	}
	if err := e.w.PutBit(bit); err != nil {
		return err
	}
	negbit := 1 - bit
	for i := 0; i < e.underflow+1; i++ {
		if err := e.w.PutBit(negbit); err != nil {
			return err
		}
	}
	return nil
}

// Decoder carries the interval-coder state for one decode pass.
type Decoder struct {
	lower uint32
	upper uint32
	code  uint32

	r *bitstream.Reader
}

// NewDecoder returns a Decoder that reads its bit stream from r, priming
// code from the first Precision bits of the stream. EOF encountered during
// priming is treated as an implicit zero bit, per the encoder's zero-pad
// guarantee.
func NewDecoder(r *bitstream.Reader) (*Decoder, error) {
	d := &Decoder{upper: model.Top, r: r}
	for i := 0; i < model.Precision; i++ {
		bit, err := readBitOrZero(r)
		if err != nil {
			return nil, err
		}
		d.code = (d.code << 1) | uint32(bit)
	}
	return d, nil
}

// Target returns the unscaled cumulative value the decoder's current code
// position represents, given the model's current cum_total. The caller
// passes this to model.Table.SymbolOf to determine which symbol was coded.
func (d *Decoder) Target(cumTotal uint32) uint32 {
	width := uint64(d.upper-d.lower) + 1
	unscaled := uint64(d.code-d.lower) + 1
	unscaled = unscaled*uint64(cumTotal) - 1
	return uint32(unscaled / width)
}

// DecodeSymbol narrows the current interval to sym's cumulative range in t,
// then renormalizes, pulling fresh bits from the stream as needed.
func (d *Decoder) DecodeSymbol(t *model.Table, sym int) error {
	lo, hi := t.RangeOf(sym)
	cum := uint64(t.CumTotal())

	width := uint64(d.upper-d.lower) + 1
	d.upper = d.lower + uint32(width*uint64(hi)/cum) - 1
	d.lower = d.lower + uint32(width*uint64(lo)/cum)

	return d.renormalize()
}

func (d *Decoder) renormalize() error {
	for {
		switch {
		case (d.upper ^ ^d.lower)&model.MSB != 0:
			// matching MSBs simply shift out.
		case (^d.upper&d.lower)&model.SMSB != 0:
			d.lower &^= model.MSB | model.SMSB
			d.upper |= model.SMSB
			d.code ^= model.SMSB
		default:
			return nil
		}

		d.lower = (d.lower & model.MSBClear) << 1
		d.upper = ((d.upper & model.MSBClear) << 1) | 1
		d.code = (d.code & model.MSBClear) << 1

		bit, err := readBitOrZero(d.r)
		if err != nil {
			return err
		}
		d.code |= uint32(bit)
	}
}

// readBitOrZero reads one bit from r, substituting an implicit zero bit on
// end-of-file, per the bit stream's contract.
func readBitOrZero(r *bitstream.Reader) (int, error) {
	bit, err := r.GetBit()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return bit, nil
}
