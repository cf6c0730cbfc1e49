package engine

import (
	"bytes"
	"testing"

	"github.com/mdipperstein/arcode/internal/bitstream"
	"github.com/mdipperstein/arcode/model"
)

// encodeBytes drives Encoder directly over data using a freshly built
// static table, without going through the arcode driver package.
func encodeBytes(t *testing.T, data []byte) []byte {
	t.Helper()

	var counts [256]uint32
	for _, b := range data {
		counts[b]++
	}
	tbl := model.NewStaticTable(counts)

	var buf bytes.Buffer
	bw := bitstream.NewWriter(&buf)
	enc := NewEncoder(bw)

	for _, b := range data {
		if err := enc.EncodeSymbol(tbl, int(b)); err != nil {
			t.Fatalf("EncodeSymbol: %v", err)
		}
		if enc.lower > enc.upper {
			t.Fatalf("lower %d > upper %d after encoding %q", enc.lower, enc.upper, b)
		}
	}
	if err := enc.EncodeSymbol(tbl, model.EOF); err != nil {
		t.Fatalf("EncodeSymbol(EOF): %v", err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	return buf.Bytes()
}

// decodeBytes drives Decoder directly, given the same static table the
// encoder used (as encodeBytes builds it from the same data, this mirrors
// how the header codec would reconstruct it in the full pipeline).
func decodeBytes(t *testing.T, encoded []byte, tbl *model.Table) []byte {
	t.Helper()

	br := bitstream.NewReader(bytes.NewReader(encoded))
	dec, err := NewDecoder(br)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	var out []byte
	for {
		target := dec.Target(tbl.CumTotal())
		sym, err := tbl.SymbolOf(target)
		if err != nil {
			t.Fatalf("SymbolOf: %v", err)
		}
		if sym == model.EOF {
			break
		}
		if err := dec.DecodeSymbol(tbl, sym); err != nil {
			t.Fatalf("DecodeSymbol: %v", err)
		}
		if dec.lower > dec.upper {
			t.Fatalf("lower %d > upper %d after decoding %d", dec.lower, dec.upper, sym)
		}
		if dec.code < dec.lower || dec.code > dec.upper {
			t.Fatalf("code %d outside [%d, %d] after decoding %d", dec.code, dec.lower, dec.upper, sym)
		}
		out = append(out, byte(sym))
	}
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{'A'},
		{0x00, 0x00, 0x00},
		[]byte("the quick brown fox jumps over the lazy dog"),
	}

	for _, data := range cases {
		var counts [256]uint32
		for _, b := range data {
			counts[b]++
		}
		tbl := model.NewStaticTable(counts)

		encoded := encodeBytes(t, data)

		decoded := decodeBytes(t, encoded, tbl)
		if !bytes.Equal(data, decoded) {
			t.Errorf("round trip mismatch: got %q, want %q", decoded, data)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	data := []byte("determinism check, twice over")
	first := encodeBytes(t, data)
	second := encodeBytes(t, data)
	if !bytes.Equal(first, second) {
		t.Errorf("encode is not deterministic across runs")
	}
}
