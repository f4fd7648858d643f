package main

import (
	"github.com/flowgraph/flowgraph/cmd"
)

func main() {
	cmd.Execute()
}
