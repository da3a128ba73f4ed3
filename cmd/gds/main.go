package main

import "github.com/OpenTraceLab/OpenTraceGDS/cmd/gds/cmd"

func main() {
	cmd.Execute()
}
