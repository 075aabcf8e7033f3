package main

import "epicquest/cmd/quest/root"

func main() {
	root.Execute()
}
