package main

import (
	"os"

	"github.com/brokerdesk/brokerdesk/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
