package main

import "github.com/takumiyoshikawa/dscgen/cmd/dscgen/commands"

func main() {
	commands.Execute()
}
