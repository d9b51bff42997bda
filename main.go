package main

import "github.com/Bitlatte/assembler/cmd"

func main() {
	cmd.Execute()
}
