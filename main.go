package main

import "github.com/shophub/shopctl/cmd"

func main() {
	cmd.Execute()
}
