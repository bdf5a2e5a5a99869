package main

import "paydocs/internal/cli"

func main() {
	cli.Execute()
}
