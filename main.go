package main

import "github.com/wellandwilde/landing-be/internal/cli"

func main() {
	cli.Execute()
}
