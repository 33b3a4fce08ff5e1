package main

import (
	"os"

	"github.com/htol/bookshop/app"
)

func main() {
	os.Exit(app.CLI(os.Args[1:]))
}
