package main

import "github.com/Domenick1991/pestbooking/internal/cli"

func main() {
	cli.Execute()
}
