package main

import "github.com/jrsteele09/college-portal/cmd/collegectl/cmd"

func main() {
	cmd.Execute()
}
