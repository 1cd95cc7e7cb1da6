package main

import "github.com/philipparndt/gostruct/cmd"

func main() {
	cmd.Execute()
}
