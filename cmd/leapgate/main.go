// Package main provides the leapgate command.
package main

import (
	"os"

	"github.com/leapstack-labs/leapgate/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
