package main

import "github.com/mavantgarderc/langcard/cmd"

func main() {
	cmd.Execute()
}
