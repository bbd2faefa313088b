package main

import "github.com/tpodg/startproxy/internal/cli"

func main() {
	cli.Execute()
}
