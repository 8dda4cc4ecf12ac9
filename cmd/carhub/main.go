package main

import "github.com/momeni/carhub/cmd/carhub/command"

func main() {
	command.Execute()
}
