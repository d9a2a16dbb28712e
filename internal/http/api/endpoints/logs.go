package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hilal-labs/ramadan-companion/internal/http/api"
	"github.com/hilal-labs/ramadan-companion/internal/http/api/packets"
	"github.com/hilal-labs/ramadan-companion/internal/model"
	"github.com/hilal-labs/ramadan-companion/internal/state"
)

// LogsModule mounts the daily-log endpoints. Past dates are readable but
// only today is writable; history is never rewritten.
func LogsModule(provider *state.Provider) api.Module {
	ctl := &logsController{provider: provider}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/logs", ctl.listLogs)
		c.GET("/logs/:date", ctl.getLog)
		c.PATCH("/logs/today", ctl.updateToday)
		c.POST("/logs/today/counters", ctl.incrementCounter)
	})
}

type logsController struct {
	provider *state.Provider
}

// GET /api/logs
func (l *logsController) listLogs(ctx *gin.Context) (any, *api.Error) {
	return packets.LogsResponse{Logs: l.provider.Data().DailyLogs}, nil
}

// GET /api/logs/:date  ("today" is accepted as a date)
func (l *logsController) getLog(ctx *gin.Context) (any, *api.Error) {
	date := ctx.Param("date")
	if date == "today" {
		date = l.provider.Today()
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid date"}
	}

	if logEntry, ok := l.provider.Data().DailyLogs[date]; ok {
		return logEntry, nil
	}
	// No entry yet: present the zero-valued shape without persisting it.
	return model.NewDailyLog(date), nil
}

// PATCH /api/logs/today
func (l *logsController) updateToday(ctx *gin.Context) (any, *api.Error) {
	var request packets.UpdateLogRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	l.provider.UpdateDailyLog(state.LogPatch{
		Prayers:           request.Prayers,
		Taraweeh:          request.Taraweeh,
		QuranPages:        request.QuranPages,
		QuranLastLocation: request.QuranLastLocation,
		DhikrCounts:       request.DhikrCounts,
		Charity:           request.Charity,
		Discipline:        request.Discipline,
		Mood:              request.Mood,
		Journal:           request.Journal,
		Fasted:            request.Fasted,
	})
	return l.provider.Data().DailyLogs[l.provider.Today()], nil
}

// POST /api/logs/today/counters
func (l *logsController) incrementCounter(ctx *gin.Context) (any, *api.Error) {
	var request packets.IncrementCounterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	l.provider.IncrementCounter(request.Counter, request.Delta)
	return l.provider.Data().DailyLogs[l.provider.Today()], nil
}
