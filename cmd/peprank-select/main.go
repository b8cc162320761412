// cmd/peprank-select/main.go
package main

import (
	"peprank/internal/appshell"
	"peprank/internal/selectapp"
)

func main() {
	appshell.Main(selectapp.RunContext)
}
