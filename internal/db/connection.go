package db

import (
	"database/sql"
	"log"

	"github.com/arisvieira/aris-api/internal/config"

	_ "github.com/go-sql-driver/mysql"
)

func Connect(cfg config.DatabaseConfig) *sql.DB {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		log.Fatalf("Unable to open DB connection: %v\n", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	return db
}
