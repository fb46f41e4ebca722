package main

import (
	"github.com/sbliven/biojava-sub014/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
