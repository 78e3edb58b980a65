package main

import (
	"os"

	"github.com/drdavisdfelix/quiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
