package main

import "github.com/lepinkainen/kansi/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
