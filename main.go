package main

import "github.com/opendatateam/ucli/cmd"

func main() {
	cmd.Execute()
}
