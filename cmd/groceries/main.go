// Package main is the entry point for the groceries CLI client.
package main

import (
	"github.com/donaldgifford/groceries/cmd/groceries/cmd"
)

func main() {
	cmd.Execute()
}
