package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hilal-labs/ramadan-companion/internal/http/api"
	"github.com/hilal-labs/ramadan-companion/internal/http/api/packets"
	"github.com/hilal-labs/ramadan-companion/internal/model"
	"github.com/hilal-labs/ramadan-companion/internal/progress"
	"github.com/hilal-labs/ramadan-companion/internal/state"
	"github.com/hilal-labs/ramadan-companion/internal/timesvc"
)

// QuranModule mounts the reading-progress, metadata and bookmark endpoints.
func QuranModule(provider *state.Provider, quran *timesvc.QuranClient) api.Module {
	ctl := &quranController{provider: provider, quran: quran}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/quran/progress", ctl.getProgress)
		c.GET("/quran/metadata", ctl.getMetadata)
		c.GET("/quran/calendar", ctl.getCalendar)
		c.PUT("/quran/bookmark", ctl.setBookmark)
	})
}

type quranController struct {
	provider *state.Provider
	quran    *timesvc.QuranClient
}

// GET /api/quran/progress
func (q *quranController) getProgress(ctx *gin.Context) (any, *api.Error) {
	data := q.provider.Data()
	meta, err := q.quran.Metadata(ctx.Request.Context())

	response := packets.QuranProgressResponse{
		QuranProgress: progress.ComputeQuranProgress(data, meta, q.provider.Today()),
	}
	if logEntry, ok := data.DailyLogs[q.provider.Today()]; ok {
		response.Bookmark = logEntry.QuranLastLocation
	}
	if err != nil {
		response.Error = err.Error()
	}
	return response, nil
}

// GET /api/quran/metadata
func (q *quranController) getMetadata(ctx *gin.Context) (any, *api.Error) {
	meta, err := q.quran.Metadata(ctx.Request.Context())
	response := packets.QuranMetadataResponse{QuranMetadata: meta}
	if err != nil {
		response.Error = err.Error()
	}
	return response, nil
}

// GET /api/quran/calendar
func (q *quranController) getCalendar(ctx *gin.Context) (any, *api.Error) {
	start := q.provider.Data().Settings.RamadanStartDate
	return packets.CalendarResponse{Days: progress.Calendar(start)}, nil
}

// PUT /api/quran/bookmark
func (q *quranController) setBookmark(ctx *gin.Context) (any, *api.Error) {
	var request packets.BookmarkRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	q.provider.UpdateDailyLog(state.LogPatch{
		QuranLastLocation: &model.QuranLocation{
			SurahID: request.SurahID,
			Ayah:    request.Ayah,
			Page:    request.Page,
		},
	})
	return q.provider.Data().DailyLogs[q.provider.Today()], nil
}
