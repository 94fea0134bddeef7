package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Vovarama1992/agent-form-bridge/internal/form"
)

func main() {
	_ = godotenv.Load()

	if err := form.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
