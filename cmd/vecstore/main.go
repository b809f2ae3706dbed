package main

import "vecstore/internal/cli"

func main() {
	cli.Execute()
}
