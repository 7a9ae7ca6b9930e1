package main

import (
	"github.com/mchmarny/trustmeter/pkg/cli"
)

func main() {
	cli.Execute()
}
