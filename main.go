package main

import (
	"github.com/lehigh-university-libraries/zugferd/cmd"
)

func main() {
	cmd.Execute()
}
