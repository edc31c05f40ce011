package main

import "github.com/tldr-it-stepankutaj/enigmakit/cmd/enigmakit"

func main() {
	enigmakit.Execute()
}
