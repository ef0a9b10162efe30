package main

import "github.com/GOKULKRISHNA7868/tas-insight/services/insight/cli"

func main() {
	cli.Execute()
}
