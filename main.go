package main

import (
	"github.com/gofiber/fiber/v2/log"

	"github.com/campuskit/portal-api/app"
)

func main() {
	if err := app.SetupAndRunServer(); err != nil {
		log.Trace(err)
		panic(err)
	}
}
