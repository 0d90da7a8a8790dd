package app

import (
	"context"

	"github.com/saradorri/ffarena/internal/infrastructure/database"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func (a *application) InitDatabase(lc fx.Lifecycle) (*gorm.DB, error) {
	dbConfig := &database.Config{
		Host:            a.config.Database.Host,
		Port:            a.config.Database.Port,
		User:            a.config.Database.User,
		Password:        a.config.Database.Password,
		Name:            a.config.Database.Name,
		SSLMode:         a.config.Database.SSLMode,
		MaxIdleConns:    a.config.Database.MaxIdleConns,
		MaxOpenConns:    a.config.Database.MaxOpenConns,
		ConnMaxLifetime: a.config.Database.ConnMaxLifetime,
	}
	db, err := database.NewDatabase(dbConfig)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.GetDB().DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db.GetDB(), nil
}
