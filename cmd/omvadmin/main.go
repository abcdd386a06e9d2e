package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	"github.com/omvsuite/omvadmin/internal/migration"
	"github.com/omvsuite/omvadmin/internal/server"
	"github.com/omvsuite/omvadmin/pkg/db"
	"github.com/omvsuite/omvadmin/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		cache.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
