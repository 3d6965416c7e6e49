package main

import (
	"github.com/palaro/guessquiz/internal/cli"
)

func main() {
	cli.Execute()
}
