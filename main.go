package main

import "github.com/ckarenz/floorsim/cmd"

func main() {
	cmd.Execute()
}
