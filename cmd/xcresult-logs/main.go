package main

import "github.com/xcbolt/xcresult-logs/internal/cli"

func main() {
	cli.Execute()
}
