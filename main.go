/*
Copyright © 2026 The genframeworks authors
*/
package main

import "github.com/nixdarwin/genframeworks/cmd"

func main() {
	cmd.Execute()
}
