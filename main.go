package main

import "github.com/cacheoverflow/rnbindgen/cmd"

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
