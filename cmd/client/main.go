package main

import "github.com/BlackWLN/seafight/internal/cli"

func main() {
	cli.Execute()
}
