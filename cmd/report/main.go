package main

import (
	"os"

	"fxinsight/internal/app"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := app.RunReport(); err != nil {
		logrus.WithError(err).Error("Error during execution")
		os.Exit(1)
	}
}
