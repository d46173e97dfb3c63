package main

import (
	"github.com/alecthomas/kong"

	"droscher.com/BeerCritic/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("Beer Critic"), kong.Description("BeerCritic is a beer review and rating service."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
