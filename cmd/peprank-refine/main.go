// cmd/peprank-refine/main.go
package main

import (
	"peprank/internal/appshell"
	"peprank/internal/refineapp"
)

func main() {
	appshell.Main(refineapp.RunContext)
}
