package main

import "github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd"

func main() {
	cmd.Execute()
}
