// Command stoich balances chemical equations.
//
// Usage:
//
//	stoich balance "CH4 + O2" "CO2 + H2O"
//	stoich batch ./equations.yaml --db ./stoich.db
//	stoich history --db ./stoich.db
package main

import (
	"fmt"
	"os"

	"github.com/roach88/stoich/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
