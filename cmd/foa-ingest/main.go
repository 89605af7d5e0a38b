package main

import (
	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/cli"
)

func main() {
	cli.Execute()
}
