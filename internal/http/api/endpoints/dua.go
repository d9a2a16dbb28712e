package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hilal-labs/ramadan-companion/internal/http/api"
	"github.com/hilal-labs/ramadan-companion/internal/http/api/packets"
	"github.com/hilal-labs/ramadan-companion/internal/state"
)

// DuaModule mounts the dua vault endpoints.
func DuaModule(provider *state.Provider) api.Module {
	ctl := &duaController{provider: provider}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/duas", ctl.listDuas)
		c.POST("/duas", ctl.addDua)
		c.PUT("/duas/:id", ctl.editDua)
		c.DELETE("/duas/:id", ctl.deleteDua)
		c.POST("/duas/:id/answered", ctl.toggleAnswered)
	})
}

type duaController struct {
	provider *state.Provider
}

// GET /api/duas
func (d *duaController) listDuas(ctx *gin.Context) (any, *api.Error) {
	return packets.DuaListResponse{Duas: d.provider.Data().DuaList}, nil
}

// POST /api/duas
func (d *duaController) addDua(ctx *gin.Context) (any, *api.Error) {
	var request packets.AddDuaRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	d.provider.AddDua(request.Text)
	return packets.DuaListResponse{Duas: d.provider.Data().DuaList}, nil
}

// PUT /api/duas/:id
func (d *duaController) editDua(ctx *gin.Context) (any, *api.Error) {
	var request packets.EditDuaRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	d.provider.EditDua(ctx.Param("id"), request.Text)
	return packets.DuaListResponse{Duas: d.provider.Data().DuaList}, nil
}

// DELETE /api/duas/:id
func (d *duaController) deleteDua(ctx *gin.Context) (any, *api.Error) {
	d.provider.DeleteDua(ctx.Param("id"))
	return packets.DuaListResponse{Duas: d.provider.Data().DuaList}, nil
}

// POST /api/duas/:id/answered
func (d *duaController) toggleAnswered(ctx *gin.Context) (any, *api.Error) {
	d.provider.ToggleDuaAnswered(ctx.Param("id"))
	return packets.DuaListResponse{Duas: d.provider.Data().DuaList}, nil
}
