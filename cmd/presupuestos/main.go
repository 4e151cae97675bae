package main

import "github.com/obras-dev/presupuestos/internal/cli"

func main() {
	cli.Execute()
}
