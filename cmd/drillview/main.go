package main

import (
	"errors"
	"fmt"
	"os"

	"drillview/internal/commands"
	"drillview/internal/env"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "drillview: .env:", err)
	}
	reg := commands.NewRegistry()
	registerView(reg)
	registerBounds(reg)
	registerInspect(reg)

	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, commands.ErrUsage) {
			reg.Usage(os.Stderr, "drillview")
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "drillview:", err)
		os.Exit(1)
	}
}
