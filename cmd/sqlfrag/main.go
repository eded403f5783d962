package main

import (
	"fmt"
	"os"

	"github.com/mitranim/sqlfrag/internal/cli"
)

func main() {
	if err := cli.Execute(os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
