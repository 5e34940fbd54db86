package main

import (
	"os"

	"github.com/kinfolium/kinfolium/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
