package main

import "github.com/devcat-io/devcat/cmd"

func main() {
	cmd.Execute()
}
