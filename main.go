// Package main is the entry point for the storyline-cli application.
package main

import (
	"github.com/samber/lo"
	"github.com/storyline-cli/storyline/cmd"
	"github.com/storyline-cli/storyline/config"
	"github.com/storyline-cli/storyline/log"
	"github.com/storyline-cli/storyline/seen"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Prune expired entries from the seen registry in the background.
	go seen.CollectGarbage()

	cmd.Execute()
}
