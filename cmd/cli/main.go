package main

import "ecocore/internal/cli/cmd"

func main() {
	cmd.Execute()
}
