package main

import "braindump/cmd/braindump-cli/cmd"

func main() {
	cmd.Execute()
}
