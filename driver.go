package arcode

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mdipperstein/arcode/engine"
	"github.com/mdipperstein/arcode/header"
	"github.com/mdipperstein/arcode/internal/bitstream"
	"github.com/mdipperstein/arcode/model"
)

// Mode selects the probability model a Coder uses.
type Mode int

const (
	// Static makes two passes over the input: one to tally frequencies
	// and build the probability table, a second to encode, with the
	// table written as a header.
	Static Mode = iota

	// Adaptive makes a single pass, starting from a uniform distribution
	// and updating probabilities as each symbol is coded.
	Adaptive
)

// Coder orchestrates one encode or decode pass: building or reading the
// probability model, driving the interval coder over every input byte, and
// releasing its file handles unconditionally on return. A Coder is
// single-use; calling EncodeFile or DecodeFile a second time returns
// ErrAlreadyOpen.
type Coder struct {
	mode Mode
	used bool
}

// NewCoder returns a Coder that uses the given probability model.
func NewCoder(mode Mode) *Coder {
	return &Coder{mode: mode}
}

// EncodeFile arithmetically encodes the file at inPath, writing the
// compressed result to outPath.
func (c *Coder) EncodeFile(inPath, outPath string) error {
	if c.used {
		return ErrAlreadyOpen
	}
	c.used = true

	in, err := os.Open(inPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer out.Close()

	var t *model.Table
	if c.mode == Static {
		t, err = buildStaticTable(in)
		if err != nil {
			return errors.Wrap(err, "")
		}
		if _, err := in.Seek(0, io.SeekStart); err != nil {
			return errors.Wrap(err, "")
		}
	} else {
		t = model.NewAdaptiveTable()
	}

	bw := bitstream.NewWriter(out)

	if c.mode == Static {
		if err := header.Write(bw, t); err != nil {
			return errors.Wrap(err, "")
		}
	}

	enc := engine.NewEncoder(bw)
	buf := make([]byte, 4096)
	for {
		n, rerr := in.Read(buf)
		for i := 0; i < n; i++ {
			sym := int(buf[i])
			if err := enc.EncodeSymbol(t, sym); err != nil {
				return errors.Wrap(err, "")
			}
			if c.mode == Adaptive {
				t.Observe(sym)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return errors.Wrap(rerr, "")
		}
	}

	if err := enc.EncodeSymbol(t, model.EOF); err != nil {
		return errors.Wrap(err, "")
	}
	if err := enc.Flush(); err != nil {
		return errors.Wrap(err, "")
	}

	return errors.Wrap(bw.Close(), "")
}

// DecodeFile reverses EncodeFile: it reads the compressed file at inPath
// and writes the reconstructed bytes to outPath.
func (c *Coder) DecodeFile(inPath, outPath string) error {
	if c.used {
		return ErrAlreadyOpen
	}
	c.used = true

	in, err := os.Open(inPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer out.Close()

	br := bitstream.NewReader(in)

	var t *model.Table
	if c.mode == Static {
		t, err = header.Read(br)
		if err != nil {
			return errors.Wrap(err, "")
		}
	} else {
		t = model.NewAdaptiveTable()
	}

	dec, err := engine.NewDecoder(br)
	if err != nil {
		return errors.Wrap(err, "")
	}

	w := make([]byte, 0, 4096)
	for {
		target := dec.Target(t.CumTotal())
		sym, err := t.SymbolOf(target)
		if err != nil {
			return errors.Wrap(err, "")
		}
		if sym == model.EOF {
			break
		}

		if err := dec.DecodeSymbol(t, sym); err != nil {
			return errors.Wrap(err, "")
		}
		if c.mode == Adaptive {
			t.Observe(sym)
		}

		w = append(w, byte(sym))
		if len(w) == cap(w) {
			if _, err := out.Write(w); err != nil {
				return errors.Wrap(err, "")
			}
			w = w[:0]
		}
	}

	if len(w) > 0 {
		if _, err := out.Write(w); err != nil {
			return errors.Wrap(err, "")
		}
	}

	return nil
}

// buildStaticTable makes the first pass over r, tallying byte frequencies
// into a static probability table.
func buildStaticTable(r io.Reader) (*model.Table, error) {
	var counts [256]uint32
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			counts[buf[i]]++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return model.NewStaticTable(counts), nil
}
