// Command blockctl lists, renders and prices catalog blocks from the terminal.
package main

import (
	"os"

	"finitefield.org/hanko-blocks/internal/platform/config"
)

func main() {
	root := newRootCmd(func() (config.Config, error) {
		return config.Load()
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
