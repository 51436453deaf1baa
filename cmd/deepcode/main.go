// Command deepcode is the terminal front-end for the DeepCode engine.
package main

import (
	"github.com/joho/godotenv"

	"github.com/deepcode-dev/deepcode/internal/cli"
)

func main() {
	// Optional .env with engine endpoint overrides; absence is fine.
	_ = godotenv.Load()

	cli.Execute()
}
