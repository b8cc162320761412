// cmd/peprank-score/main.go
package main

import (
	"peprank/internal/appshell"
	"peprank/internal/scoreapp"
)

func main() {
	appshell.Main(scoreapp.RunContext)
}
