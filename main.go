package main

import "github.com/Tharoon321/event-attendance/cmd"

func main() {
	cmd.Execute()
}
