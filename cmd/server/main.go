package main

import "carnet/cmd/server/cmd"

func main() {
	cmd.Execute()
}
