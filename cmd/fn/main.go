// cmd/fn/main.go - command-line front end for gofunc
//
// Usage:
//	fn eval --name polynomial --payload 1,6 2
//	fn newton -f quad.yaml --x0 5
package main

import "github.com/njchilds90/gofunc/internal/cli"

func main() {
	cli.Execute()
}
