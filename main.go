// Package main is the entry point for the PetWay CLI application.
package main

import (
	"petway/cli/cmd"
)

func main() {
	cmd.Execute()
}
