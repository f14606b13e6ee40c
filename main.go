package main

import (
	"os"

	"github.com/gamedevtech/tao/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
