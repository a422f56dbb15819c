package main

import "tax-engine/internal/cli"

func main() {
	cli.Execute()
}
