package main

import "github.com/lepinkainen/booktracer/cmd"

// execute is swappable for tests.
var execute = cmd.Execute

func main() {
	execute()
}
