package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hilal-labs/ramadan-companion/internal/http/api"
	"github.com/hilal-labs/ramadan-companion/internal/http/api/packets"
	"github.com/hilal-labs/ramadan-companion/internal/seed"
	"github.com/hilal-labs/ramadan-companion/internal/state"
)

// DhikrModule mounts the dhikr endpoints: the merged built-in/custom list
// with today's counts, custom entry CRUD, and count increments.
func DhikrModule(provider *state.Provider) api.Module {
	ctl := &dhikrController{provider: provider}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/dhikr", ctl.listDhikr)
		c.POST("/dhikr/custom", ctl.addCustom)
		c.PUT("/dhikr/custom/:id", ctl.editCustom)
		c.DELETE("/dhikr/custom/:id", ctl.deleteCustom)
		c.POST("/dhikr/counts", ctl.incrementCount)
	})
}

type dhikrController struct {
	provider *state.Provider
}

// GET /api/dhikr
func (d *dhikrController) listDhikr(ctx *gin.Context) (any, *api.Error) {
	data := d.provider.Data()
	counts := data.DailyLogs[d.provider.Today()].DhikrCounts

	all := seed.BuiltInDhikr()
	all = append(all, data.CustomDhikr...)

	out := make([]packets.DhikrWithCount, 0, len(all))
	for _, entry := range all {
		out = append(out, packets.DhikrWithCount{Dhikr: entry, TodayCount: counts[entry.ID]})
	}
	return packets.DhikrListResponse{Dhikr: out}, nil
}

// POST /api/dhikr/custom
func (d *dhikrController) addCustom(ctx *gin.Context) (any, *api.Error) {
	var request packets.AddDhikrRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	d.provider.AddCustomDhikr(request.Label)
	return d.provider.Data().CustomDhikr, nil
}

// PUT /api/dhikr/custom/:id
func (d *dhikrController) editCustom(ctx *gin.Context) (any, *api.Error) {
	var request packets.EditDhikrRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	d.provider.EditCustomDhikr(ctx.Param("id"), request.Label)
	return d.provider.Data().CustomDhikr, nil
}

// DELETE /api/dhikr/custom/:id
func (d *dhikrController) deleteCustom(ctx *gin.Context) (any, *api.Error) {
	d.provider.DeleteCustomDhikr(ctx.Param("id"))
	return d.provider.Data().CustomDhikr, nil
}

// POST /api/dhikr/counts
func (d *dhikrController) incrementCount(ctx *gin.Context) (any, *api.Error) {
	var request packets.IncrementDhikrRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	d.provider.IncrementDhikr(request.ID, request.Delta)
	return d.provider.Data().DailyLogs[d.provider.Today()].DhikrCounts, nil
}
