package main

import "addrscan/cmd"

func main() {
	cmd.Execute()
}
