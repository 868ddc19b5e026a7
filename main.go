package main

import (
	"fmt"
	"os"

	"github.com/sadopc/laxtime/internal/cli"
)

func main() {
	if err := cli.RootCmd(cli.Open).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
