package main

import "github.com/seva-sangam/donation-services/cmd"

func main() {
	cmd.Execute()
}
