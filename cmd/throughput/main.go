package main

import "github.com/andrescamacho/throughput-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
