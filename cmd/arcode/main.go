// Command arcode compresses and decompresses files using arithmetic coding.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mdipperstein/arcode"
)

var (
	doEncode = flag.Bool("c", false, "encode (compress) input")
	doDecode = flag.Bool("d", false, "decode (decompress) input")
	adaptive = flag.Bool("a", false, "use the adaptive model (default is static)")
	inPath   = flag.String("i", "", "input file path")
	outPath  = flag.String("o", "", "output file path")
	help     = flag.Bool("h", false, "show usage")
	help2    = flag.Bool("?", false, "show usage")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-c|-d] [-a] -i input -o output\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *help || *help2 {
		flag.Usage()
		os.Exit(0)
	}

	if *doEncode == *doDecode {
		fmt.Fprintln(os.Stderr, "exactly one of -c or -d is required")
		flag.Usage()
		os.Exit(1)
	}
	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "-i and -o are required")
		flag.Usage()
		os.Exit(1)
	}

	mode := arcode.Static
	if *adaptive {
		mode = arcode.Adaptive
	}
	c := arcode.NewCoder(mode)

	var err error
	if *doEncode {
		err = c.EncodeFile(*inPath, *outPath)
	} else {
		err = c.DecodeFile(*inPath, *outPath)
	}
	if err != nil {
		log.Fatalf("%+v", err)
	}
}
