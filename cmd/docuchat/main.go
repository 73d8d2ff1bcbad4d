// Command docuchat starts the PDF chat service.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/docuchat-labs/docuchat/internal/adapters/driving/cli"
)

func main() {
	// A missing .env file is not an error, the environment may already
	// be configured.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
