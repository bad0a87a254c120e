package main

import (
	"os"

	"github.com/nfrund/golfjourneys/cmd/gjviews/cmd"
)

// AppBundle can be set at build time to force a bundle source.
// Example: go build -ldflags "-X 'main.AppBundle=disk'"
var AppBundle string

func main() {
	if AppBundle != "" {
		os.Setenv("APP_BUNDLE", AppBundle)
	}
	cmd.Execute()
}
