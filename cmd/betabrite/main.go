// Command betabrite displays a message on an Alpha protocol LED sign.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
