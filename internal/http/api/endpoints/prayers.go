package endpoints

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hilal-labs/ramadan-companion/internal/http/api"
	"github.com/hilal-labs/ramadan-companion/internal/http/api/packets"
	"github.com/hilal-labs/ramadan-companion/internal/progress"
	"github.com/hilal-labs/ramadan-companion/internal/state"
	"github.com/hilal-labs/ramadan-companion/internal/timesvc"
)

// PrayersModule mounts the prayer-times endpoint. A failed fetch is reported
// inline rather than as an HTTP error so the page keeps rendering whatever it
// has.
func PrayersModule(provider *state.Provider, prayers *timesvc.PrayerTimesClient, activeWindow time.Duration) api.Module {
	ctl := &prayersController{provider: provider, prayers: prayers, activeWindow: activeWindow}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayers", ctl.getPrayers)
	})
}

type prayersController struct {
	provider     *state.Provider
	prayers      *timesvc.PrayerTimesClient
	activeWindow time.Duration
}

// GET /api/prayers
func (p *prayersController) getPrayers(ctx *gin.Context) (any, *api.Error) {
	settings := p.provider.Data().Settings
	today := p.provider.Today()

	response := packets.PrayersResponse{City: settings.City, Date: today}

	times, err := p.prayers.TimingsByCity(ctx.Request.Context(), settings.City, settings.CalculationMethod, today)
	if err != nil {
		response.Error = err.Error()
		return response, nil
	}
	response.Times = times

	now := p.provider.Now()
	ordered := times.Ordered()
	if next := progress.Next(ordered, now); next != nil {
		response.Next = &packets.NextPrayerInfo{
			Name:      next.Name,
			At:        next.At.Format("15:04"),
			Countdown: progress.FormatCountdown(next.Remaining),
		}
	}
	response.Active = progress.Active(ordered, now, p.activeWindow)
	return response, nil
}
