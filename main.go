/*
Copyright © 2023 Glossopoeia
*/
package main

import (
	"github.com/glossopoeia/chai/cmd"
)

func main() {
	cmd.Execute()
}
