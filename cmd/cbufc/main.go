package main

import "github.com/verdant-robotics/cbuf/cmd/cbufc/cmd"

func main() {
	cmd.Execute()
}
