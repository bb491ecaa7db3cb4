// file: main.go
// version: 1.0.0
// guid: 3f8c1d2a-9b4e-4f6a-8c1d-2a9b4e6f0a3c

package main

import (
	"fmt"
	"os"

	"github.com/cratekeeper/cratekeeper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
