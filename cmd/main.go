package main

import (
	"os"

	"fxinsight/internal/app"

	"github.com/sirupsen/logrus"
)

// @title fxinsight API
// @version 1.0
// @description Quarterly USD exchange rate analytics over the US Treasury Fiscal Data API.
// @host localhost:8080
// @BasePath /
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped")
		os.Exit(1)
	}
}
