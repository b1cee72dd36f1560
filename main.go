// planview renders plan timelines as HTML, SVG or terminal Gantt charts.

package main

import (
	"fmt"
	"os"

	"github.com/drew/planview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
