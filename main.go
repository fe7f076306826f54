package main

import "github.com/KaramelBytes/autoinsight/cmd"

func main() {
	cmd.Execute()
}
