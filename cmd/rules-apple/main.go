package main

import (
	"github.com/joho/godotenv"

	"github.com/FuegoFro/rules-apple/cmd/rules-apple/internal"
)

func main() {
	_ = godotenv.Load()
	internal.Execute()
}
