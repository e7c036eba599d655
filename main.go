package main

import "github.com/jsphweid/chordchart/cmd"

func main() {
	cmd.Execute()
}
