package main

import "github.com/voteflow/votecli/cmd"

func main() {
	cmd.Execute()
}
