// Command tsport translates TypeScript interface declarations.
package main

import (
	"os"

	"github.com/toyz/tsport/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
