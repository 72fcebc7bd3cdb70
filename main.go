package main

import "packfix/cmd"

func main() {
	cmd.Execute()
}
