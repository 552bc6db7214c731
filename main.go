package main

import "github.com/papapumpkin/bazi/cmd"

func main() {
	cmd.Execute()
}
