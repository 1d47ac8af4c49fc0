package main

import "github.com/Fordzamo/Spaced-Repitition/cmd"

func main() {
	cmd.Execute()
}
