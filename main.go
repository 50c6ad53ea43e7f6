package main

import (
	"github.com/thanhnguyen2187/horadric/cli"
)

func main() {
	cli.Start()
}
