package main

import "gearwear/internal/cli"

func main() {
	cli.Execute()
}
