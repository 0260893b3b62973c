package main

import (
	"fmt"
	"os"

	"github.com/sokinpui/srcfix"
)

func main() {
	if err := srcfix.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
