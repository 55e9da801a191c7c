//go:build cli
// +build cli

package main

import (
	_ "brickyard.GO/custom"

	"brickyard.GO/cmd"
	"brickyard.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
