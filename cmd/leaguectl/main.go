package main

import (
	"github.com/khokhopl/league-console/internal/cli"
)

func main() {
	cli.Execute()
}
