package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/bookline-app/bookline/migrations"
	"github.com/bookline-app/bookline/pkg/configuration"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	conf := configuration.Use()

	db, err := sql.Open("pgx", conf.Database.ConnectionString())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose dialect: %v", err)
	}

	if *down {
		if err := goose.Down(db, "."); err != nil {
			log.Fatalf("goose down: %v", err)
		}
		return
	}
	if err := goose.Up(db, "."); err != nil {
		log.Fatalf("goose up: %v", err)
	}
}
