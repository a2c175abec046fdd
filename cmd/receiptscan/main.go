package main

import (
	"os"

	"receiptscan/cmd/receiptscan/commands"
)

func main() {
	os.Exit(commands.Execute())
}
