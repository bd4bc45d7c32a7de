package main

import "fieldgen/cmd"

func main() {
	cmd.Execute()
}
