package main

import (
	"os"

	"github.com/AppShell-Admin/AppShell-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
