// cmd/main.go
package main

import (
	"go-fintrack/app"
)

func main() {
	app.Run()
}
