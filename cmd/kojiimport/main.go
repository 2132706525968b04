package main

import "github.com/dbsmedya/kojiimport/cmd/kojiimport/cmd"

func main() {
	cmd.Execute()
}
