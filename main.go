package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(loadConfig()).Execute(); err != nil {
		log.Fatal().Err(err).Msg("evilhangman exited")
	}
}
