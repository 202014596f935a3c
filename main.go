package main

import (
	"os"

	"github.com/ThatCatDev/llamalaunch/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
