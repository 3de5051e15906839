// Command ropecat reads a file (or stdin) into a Rope and writes it back
// out, as a minimal smoke test for the streaming load/store path.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/textrope/rope"
)

func main() {
	path := flag.String("f", "", "file to read (default: stdin)")
	showStats := flag.Bool("stats", false, "print byte/char/line counts instead of the content")
	flag.Parse()

	in := os.Stdin
	if *path != "" {
		f, err := os.Open(*path)
		if err != nil {
			log.Fatalf("ropecat: %v", err)
		}
		defer f.Close()
		in = f
	}

	r, err := rope.FromReader(in)
	if err != nil {
		log.Fatalf("ropecat: %v", err)
	}

	if *showStats {
		log.Printf("bytes=%d chars=%d lines=%d", r.LenBytes(), r.LenChars(), r.LenLines())
		return
	}

	if _, err := r.WriteTo(os.Stdout); err != nil {
		log.Fatalf("ropecat: %v", err)
	}
}
