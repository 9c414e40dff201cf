package main

import (
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/lexibel/lexctl/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// main is the entry point of the application.
// It sets up logging based on the DEBUG_LEXCTL environment variable,
// starts a goroutine to listen for interrupt signals, and executes the main command.
func main() {
	// A .env file in the working directory can set LEXIBEL_API_URL and the
	// LEXCTL_* overrides; missing files are fine.
	_ = godotenv.Load()

	configureLogLevelFromEnv()

	stopChan := setupInterruptListener()
	go handleInterrupt(stopChan,
		func(msg string) { log.Error().Msg(msg) },
		os.Exit,
	)

	// Program entry point
	cmd.Execute()
}

// configureLogLevelFromEnv enables debug logging to stdout when DEBUG_LEXCTL
// is set to a truthy value, and disables logging otherwise.
func configureLogLevelFromEnv() {
	switch os.Getenv("DEBUG_LEXCTL") {
	case "", "false", "0":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// setupInterruptListener registers a channel for interrupt signals.
func setupInterruptListener() chan os.Signal {
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	return stopChan
}

// handleInterrupt waits for an interrupt signal, logs it, and exits the
// program with code 1.
func handleInterrupt(stopChan chan os.Signal, fatalLog func(string), exit func(int)) {
	<-stopChan
	fatalLog("Interrupt signal received. Exiting...")
	exit(1)
}
