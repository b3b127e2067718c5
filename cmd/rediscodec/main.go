package main

import (
	"os"

	"github.com/AndrewDonelson/rediscodec/internal/cli"
	"github.com/charmbracelet/log"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
