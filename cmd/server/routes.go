package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hilal-labs/ramadan-companion/internal/backup"
	"github.com/hilal-labs/ramadan-companion/internal/config"
	"github.com/hilal-labs/ramadan-companion/internal/http/api"
	"github.com/hilal-labs/ramadan-companion/internal/http/api/endpoints"
	"github.com/hilal-labs/ramadan-companion/internal/http/ws"
	"github.com/hilal-labs/ramadan-companion/internal/state"
	"github.com/hilal-labs/ramadan-companion/internal/timesvc"
)

type routeDeps struct {
	cfg      *config.Config
	provider *state.Provider
	prayers  *timesvc.PrayerTimesClient
	quran    *timesvc.QuranClient
	exporter backup.Exporter
	hub      *ws.Hub
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, deps routeDeps) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		endpoints.SettingsModule(deps.provider),
		endpoints.LogsModule(deps.provider),
		endpoints.DhikrModule(deps.provider),
		endpoints.DuaModule(deps.provider),
		endpoints.QuranModule(deps.provider, deps.quran),
		endpoints.PrayersModule(deps.provider, deps.prayers, deps.cfg.ActiveWindow),
		endpoints.DashboardModule(deps.provider, deps.prayers, deps.cfg.ActiveWindow),
		endpoints.BackupModule(deps.provider, deps.exporter),
	)

	// Live countdown and change stream
	r.GET("/ws", deps.hub.Handler())
}
