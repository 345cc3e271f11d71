package main

import "github.com/railwayapp/stackgen/cmd/stackgen"

func main() {
	stackgen.Execute()
}
