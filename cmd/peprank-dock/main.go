// cmd/peprank-dock/main.go
package main

import (
	"peprank/internal/appshell"
	"peprank/internal/dockapp"
)

func main() {
	appshell.Main(dockapp.RunContext)
}
