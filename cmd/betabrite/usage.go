package main

import (
	"fmt"
	"io"

	betabrite "github.com/bm16ton/betabrite-alpha-led-signs"
)

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: betabrite [-s speed] [-b memfile] [-h] [-v]
                 [-m text|-f filename] [-p port] [--config file]

Options:

 -s speed       : how long to hold text; 0=no delay, 1-5=longest to shortest
                  (default=1)
 -b memfile     : BetaBrite memory file to store text; single char (e.g. "C")
                  (default=A)
 -h             : this help screen
 -v             : display input and status - if any
 -m text        : text of message to display; (default - blank [""])
 -f filename    : filename to read message from
`)
	fmt.Fprintf(w, ` -p port        : serial port to use (e.g. "/dev/ttyUSB0")
                  (default=%q)
 --config file  : YAML file with default port, slot and speed

`, betabrite.DefaultDevice)
}
