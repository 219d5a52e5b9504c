package main

import (
	"os"

	"github.com/fedisieve/fedisieve/cmd/fedisieve/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
