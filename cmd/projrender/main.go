// projrender renders projected globe frames without a GPU and inspects
// single-point projections.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)
		return fmt.Errorf("missing command")
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "render":
		return cmdRender(args, out)
	case "sample", "project":
		return cmdSample(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(out)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, `projrender - software globe projection renderer

Usage:
  projrender <command> [options]

Commands:
  render [options]             Render a frame to a PNG file
  sample [options] <lon> <lat> Print the clip position of a point in every projection

Examples:
  projrender render -projection gnomonic -center-lon 30 -center-lat 45 -o gnomonic.png
  projrender render -lines -graticule -coastline coast.geojson -o map.png
  projrender sample -center-lon 10 15 50`)
}
