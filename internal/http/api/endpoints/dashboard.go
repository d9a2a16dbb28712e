package endpoints

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hilal-labs/ramadan-companion/internal/http/api"
	"github.com/hilal-labs/ramadan-companion/internal/http/api/packets"
	"github.com/hilal-labs/ramadan-companion/internal/model"
	"github.com/hilal-labs/ramadan-companion/internal/progress"
	"github.com/hilal-labs/ramadan-companion/internal/seed"
	"github.com/hilal-labs/ramadan-companion/internal/state"
	"github.com/hilal-labs/ramadan-companion/internal/timesvc"
)

// DashboardModule mounts the home-screen summary: greeting, Ramadan day,
// hadith of the day, streak and the prayer countdown.
func DashboardModule(provider *state.Provider, prayers *timesvc.PrayerTimesClient, activeWindow time.Duration) api.Module {
	ctl := &dashboardController{provider: provider, prayers: prayers, activeWindow: activeWindow}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/dashboard", ctl.getDashboard)
	})
}

type dashboardController struct {
	provider     *state.Provider
	prayers      *timesvc.PrayerTimesClient
	activeWindow time.Duration
}

// GET /api/dashboard
func (d *dashboardController) getDashboard(ctx *gin.Context) (any, *api.Error) {
	data := d.provider.Data()
	today := d.provider.Today()
	now := d.provider.Now()

	response := packets.DashboardResponse{
		Username:   data.Settings.Username,
		Today:      today,
		RamadanDay: progress.RamadanDay(today, data.Settings.RamadanStartDate),
		Hadith:     seed.HadithOfTheDay(now),
		Streak:     data.Streaks[model.StreakFullSalah],
	}

	times, err := d.prayers.TimingsByCity(ctx.Request.Context(), data.Settings.City, data.Settings.CalculationMethod, today)
	if err != nil {
		response.PrayerError = err.Error()
		return response, nil
	}

	ordered := times.Ordered()
	if next := progress.Next(ordered, now); next != nil {
		response.Next = &packets.NextPrayerInfo{
			Name:      next.Name,
			At:        next.At.Format("15:04"),
			Countdown: progress.FormatCountdown(next.Remaining),
		}
	}
	response.Active = progress.Active(ordered, now, d.activeWindow)
	return response, nil
}
