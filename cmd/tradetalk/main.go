package main

import (
	"github.com/paperstreet/tradetalk/internal/cli"
)

func main() {
	cli.Run()
}
