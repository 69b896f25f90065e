package main

import (
	"os"

	"github.com/tanpawarit/Chative-Phone-Sales-Assistant/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
