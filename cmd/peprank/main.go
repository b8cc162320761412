// cmd/peprank/main.go
package main

import (
	"peprank/internal/appshell"
	"peprank/internal/runapp"
)

func main() {
	appshell.Main(runapp.RunContext)
}
