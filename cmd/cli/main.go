// Package main implements the leaderboard CLI for operating the score store from the command line.
package main

import (
	"os"

	"github.com/dsjohal14/arcadeboard/internal/libs/obs"
)

func main() {
	obs.InitLogger(os.Getenv("LOG_LEVEL"))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
