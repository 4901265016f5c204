package main

import (
	"context"
	"os"

	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/conf"
	"logiroute/ms-delivery/pkg/route"
	"logiroute/ms-delivery/pkg/utils"
)

const (
	APPNAME = "Geo"
)

func main() {
	conf.SetEnv()
	logger.Init(APPNAME)
	utils.LoadMessageError()

	// cloud0 reads its settings from the environment
	_ = os.Setenv("PORT", conf.LoadEnv().Port)
	// no database behind this process
	_ = os.Setenv("ENABLE_DB", "false")

	app := route.NewGeoService()
	ctx := context.Background()
	err := app.Start(ctx)
	if err != nil {
		logger.Tag("main").Error(err)
	}
	os.Clearenv()
}
