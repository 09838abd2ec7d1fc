package main

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/infrastructure/communication"
	"shiftpay.net.au/shiftpay/infrastructure/devops"
	"shiftpay.net.au/shiftpay/web/handlers/admin"
	"shiftpay.net.au/shiftpay/web/handlers/auth"
	"shiftpay.net.au/shiftpay/web/handlers/breakrule"
	"shiftpay.net.au/shiftpay/web/handlers/clock"
	"shiftpay.net.au/shiftpay/web/handlers/employee"
	payrollapi "shiftpay.net.au/shiftpay/web/handlers/payroll"
	"shiftpay.net.au/shiftpay/web/handlers/timesheet"
	"shiftpay.net.au/shiftpay/web/middlewares"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := devops.LoadServiceConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DSN == "" {
		log.Fatal("DSN is not configured")
	}

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		log.Fatal("Failed to decode signing secret:", err)
	}

	dm, err := core.New(cfg.DSN, 10)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	if err := dm.EnsureAdminSchema(ctx); err != nil {
		log.Fatal(err)
	}

	notifier := communication.ConnectSlack()

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api/v1.0")
	{
		// keypad and login run before any session exists
		clock.Register(api, dm)
		auth.Register(api, dm, cfg.SigningSecret)

		protected := api.Group("")
		protected.Use(middlewares.Authentication(jwtSecret))
		{
			timesheet.Register(protected, dm)
			employee.Register(protected, dm)
			breakrule.Register(protected, dm, notifier)
			payrollapi.Register(protected, dm)
		}
	}

	adminAPI := r.Group("/api/admin")
	adminAPI.Use(middlewares.Authentication(jwtSecret), middlewares.AdminOnly())
	{
		admin.Register(adminAPI, dm, notifier)
	}

	r.Run("0.0.0.0:8090")
}
