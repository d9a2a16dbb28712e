package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hilal-labs/ramadan-companion/internal/http/api"
	"github.com/hilal-labs/ramadan-companion/internal/http/api/packets"
	"github.com/hilal-labs/ramadan-companion/internal/model"
	"github.com/hilal-labs/ramadan-companion/internal/state"
)

// SettingsModule mounts the user-configuration endpoints.
func SettingsModule(provider *state.Provider) api.Module {
	ctl := &settingsController{provider: provider}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/settings", ctl.getSettings)
		c.PUT("/settings", ctl.updateSettings)
	})
}

type settingsController struct {
	provider *state.Provider
}

// GET /api/settings
func (s *settingsController) getSettings(ctx *gin.Context) (any, *api.Error) {
	return s.provider.Data().Settings, nil
}

// PUT /api/settings
func (s *settingsController) updateSettings(ctx *gin.Context) (any, *api.Error) {
	var request packets.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	settings := model.Settings{
		City:                 request.City,
		CalculationMethod:    request.CalculationMethod,
		Theme:                request.Theme,
		LastTenDaysMode:      request.LastTenDaysMode,
		QuranGoal:            request.QuranGoal,
		TaraweehGoal:         request.TaraweehGoal,
		ShowArabicHadith:     request.ShowArabicHadith,
		NotificationsEnabled: request.NotificationsEnabled,
		Username:             request.Username,
		RamadanStartDate:     request.RamadanStartDate,
	}
	s.provider.UpdateSettings(settings)
	return settings, nil
}
