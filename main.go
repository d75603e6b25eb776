package main

import "ratline/internal/cli"

func main() {
	cli.Execute()
}
