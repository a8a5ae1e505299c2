package main

import "github.com/KaramelBytes/genoplot/cmd"

func main() {
	cmd.Execute()
}
