package main

import (
	"os"

	"github.com/rcliao/hunter-protocol/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
