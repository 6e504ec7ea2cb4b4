package main

import "github.com/aweris/mediacache/cmd/mediacache/cmd"

func main() {
	cmd.Execute()
}
