package main

import "github.com/tracelab/workspaces-go/cmd"

func main() {
	cmd.Execute()
}
