package main

import "github.com/assetdash/assetdash/internal/cli"

func main() {
	cli.Execute()
}
