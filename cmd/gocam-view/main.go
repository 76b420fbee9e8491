package main

import "github.com/philipparndt/gocam/cmd"

func main() {
	cmd.Execute()
}
