package main

import (
	"os"

	"github.com/securefab/traincore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
