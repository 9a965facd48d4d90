package db

import (
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/notionstudy21-cmd/AuctionHub/internal/config"
	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

func NewPostgresDB(cfg *config.PostgresConfig) (*sql.DB, error) {
	utils.Info("connecting to postgres", map[string]any{"conn": cfg.Conn})
	db, err := sql.Open("postgres", cfg.Conn)

	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, nil
}
