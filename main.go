package main

import "hangouts-backend/cmd"

func main() {
	cmd.Run()
}
