package main

import (
	"fmt"
	"os"

	"github.com/krazyTry/nft-fraction-go/cmd/fraction-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fraction-cli failed: %v\n", err)
		os.Exit(1)
	}
}
