//go:build tinygo && baremetal

package main

import (
	"picospectrum/app"
	"picospectrum/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
