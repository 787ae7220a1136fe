package main

import "github.com/askwind/askwind/internal/cli"

func main() {
	cli.Execute()
}
