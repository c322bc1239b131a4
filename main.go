package main

import (
	"github.com/TDMillar-Biology/rmtools/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
