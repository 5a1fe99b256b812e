// maqraactl is a terminal front end for the Maqraa admin API, driving the
// same session cache the dashboard uses.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
