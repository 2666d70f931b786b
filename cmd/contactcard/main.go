package main

import "contactcard/internal/cli"

func main() {
	cli.Execute()
}
