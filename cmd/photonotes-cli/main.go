package main

import "photonotes/cmd/photonotes-cli/cmd"

func main() {
	cmd.Execute()
}
