package main

import "github.com/emalab/ematools/cmd/ematool/cmd"

func main() {
	cmd.Execute()
}
