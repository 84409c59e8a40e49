package main

import "github.com/kamal-hamza/unpack-cli/cmd"

func main() {
	cmd.Execute()
}
