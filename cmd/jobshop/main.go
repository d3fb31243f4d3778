package main

import "github.com/quillon/jobshop/pkg/interfaces/cli/commands"

func main() {
	commands.Execute()
}
