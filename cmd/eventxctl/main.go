// Command eventxctl inspects, renders and demos switch configurations.
package main

import (
	"os"

	"github.com/comalice/eventx/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
