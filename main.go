package main

import "github.com/4GeeksAcademy/Place-Between-Daniel/cmd"

func main() {
	cmd.Execute()
}
