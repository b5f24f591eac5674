package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Maverick-list/Personal-Advance-Portofolio/mcp"
)

func main() {
	if err := mcp.RunMCPServer(); err != nil {
		log.Error().Err(err).Msg("assistant-mcp-server exited with error")
		os.Exit(1)
	}
}
