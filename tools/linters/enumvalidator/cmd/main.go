package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"radbytes.org/pulse/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
