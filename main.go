package main

import "github.com/daviddaadams/NYPDShootingIncidents/cmd"

func main() {
	cmd.Execute()
}
