package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/olukareem/portfolio/cmd"
)

func main() {
	// A missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
