package main

import (
	"sift/cmd"
)

func main() {
	cmd.Execute()
}
