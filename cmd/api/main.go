// Package main FF Arena API
//
// FF Arena runs Free Fire tournaments on a platform credit ledger. Hosts create tournaments,
// players join by paying an entry fee into the prize pool, and hosts pay prizes out of it.
// A background moderator penalizes hosts who never start and cancels tournaments with
// full refunds when they stay idle too long.
//
//	Schemes: http, https
//	Host: localhost:8080
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- bearer
package main

import (
	"context"

	_ "github.com/saradorri/ffarena/docs"
	"github.com/saradorri/ffarena/internal/app"
)

// @title FF Arena API Service
// @version 1.0
// @description FF Arena manages Free Fire tournaments, entry fees, prize pools and host moderation on a credit ledger.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()
	application := app.NewApplication(ctx)
	application.Setup()
}
