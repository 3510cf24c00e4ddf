package main

import "github.com/retrospace/messenger-cli/internal/cmd"

func main() {
	cmd.Execute()
}
