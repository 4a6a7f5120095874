package main

import "github.com/rustyeddy/regime/internal/cli"

func main() {
	cli.Execute()
}
