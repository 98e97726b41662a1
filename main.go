package main

import "galaxy-cinema-cli/cmd"

func main() {
	cmd.Execute()
}
