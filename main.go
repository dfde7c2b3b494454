package main

import (
	"github.com/thanhnguyen2187/gom-savior/cli"
)

func main() {
	cli.Start()
}
