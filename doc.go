// Package arcode implements a byte-oriented arithmetic coder: a lossless
// entropy compressor that maps a sequence of input bytes to a compact bit
// stream whose length approaches the source's information entropy.
//
// Two modeling modes are supported. The static mode makes two passes over
// the input, tallying byte frequencies and writing them as an explicit
// header before the encoded payload. The adaptive mode makes a single
// pass, starting from a uniform distribution over the 257-symbol alphabet
// (byte values 0-255 plus an end-of-stream sentinel) and updating
// probabilities as each byte is coded.
//
// Below is an example of using this package to compress and decompress a
// file:
//
//	c := arcode.NewCoder(arcode.Static)
//	if err := c.EncodeFile("gettysburg.txt", "gettysburg.arc"); err != nil {
//		log.Fatal(err)
//	}
//
//	d := arcode.NewCoder(arcode.Static)
//	if err := d.DecodeFile("gettysburg.arc", "gettysburg.out"); err != nil {
//		log.Fatal(err)
//	}
//
// Reference:
// Witten, Ian H.; Neal, Radford M.; Cleary, John G. (June 1987). "Arithmetic
// Coding for Data Compression". Communications of the ACM 30 (6): 520-540.
package arcode
