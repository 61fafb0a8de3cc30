package main

import "github.com/1broseidon/textviz/cmd/textviz/commands"

func main() {
	commands.Execute()
}
