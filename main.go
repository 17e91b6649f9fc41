// Command avmango browses, searches and plays videos from a structured board and a bulk catalog.
package main

import (
	"github.com/ghie29/avmango/cmd"
	"github.com/ghie29/avmango/config"
	"github.com/ghie29/avmango/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
