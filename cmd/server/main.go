package main

import (
	"log"

	httpapi "github.com/Diegoc04/BlackRoyaleGame-FORK/internal/api/http"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/api/ws"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/blackjack"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/config"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/logger"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/room"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/session"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/store"
)

func main() {
	cfg := config.Load()

	zlog := logger.New(cfg.LogFile)
	defer func() { _ = zlog.Sync() }()

	catalog := make([]room.CatalogEntry, 0, len(cfg.SeedRooms))
	for _, id := range cfg.SeedRooms {
		catalog = append(catalog, room.CatalogEntry{ID: id})
	}
	mem := store.NewMemory(cfg.DefaultBalance, catalog)

	sessions := session.NewRegistry()
	manager := room.NewManager(cfg.MinPlayers, cfg.MaxPlayers, blackjack.New, zlog)
	hub := ws.NewHub(zlog)
	gateway := ws.NewGateway(hub, sessions, manager, mem, mem, mem, zlog)

	r := httpapi.NewRouter(gateway, manager)

	zlog.Infof("blackjack server listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
