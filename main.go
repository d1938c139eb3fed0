package main

import (
	"os"

	"github.com/FACorreiaa/go-cityinfo-api/cmd"
)

// @title        CityInfo API
// @version      1.0
// @description  Cities and their points of interest.
// @host         localhost:8000
// @BasePath     /api
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
