package arcode

import "fmt"

// ErrAlreadyOpen is returned when EncodeFile or DecodeFile is called on a
// Coder that has already been used. A Coder is single-use: its streams and
// probability table belong to exactly one encode-or-decode pass.
var ErrAlreadyOpen = fmt.Errorf("arcode: coder already bound to an encode or decode pass")

// ErrNoInput reports an operation attempted before an input stream was
// bound. EncodeFile and DecodeFile open their streams before any other work,
// so no function in this module returns it.
var ErrNoInput = fmt.Errorf("arcode: no input stream opened")

// ErrNoOutput reports an operation attempted before an output stream was
// bound. EncodeFile and DecodeFile open their streams before any other work,
// so no function in this module returns it.
var ErrNoOutput = fmt.Errorf("arcode: no output stream opened")
