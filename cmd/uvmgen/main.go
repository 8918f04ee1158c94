package main

import "github.com/OpenTraceLab/OpenTraceUVM/cmd/uvmgen/cmd"

func main() {
	cmd.Execute()
}
