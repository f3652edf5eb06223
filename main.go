package main

import "github.com/brpalette/brpalette/cmd"

func main() {
	cmd.Execute()
}
