// Command xcoord loads a layered graph and config file, assigns
// x-coordinates via the Brandes & Koepf algorithm, and renders the result.
package main

import (
	"fmt"
	"os"
)

func main() {
	c := NewCmd()
	if err := c.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
