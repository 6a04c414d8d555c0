// cmd/funcd/main.go - HTTP tool server for gofunc
//
// Exposes gofunc tools as an HTTP endpoint for agent frameworks.
//
// Usage:
//	go run ./cmd/funcd --port 8080
//	FUNCD_LOG_LEVEL=debug go run ./cmd/funcd
package main

import "github.com/njchilds90/gofunc/internal/server"

func main() {
	server.Execute()
}
