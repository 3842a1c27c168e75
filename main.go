package main

import (
	"example.com/gatherly/services/planning/cmd"
)

func main() {
	cmd.Execute()
}
