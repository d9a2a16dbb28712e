package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hilal-labs/ramadan-companion/internal/backup"
	"github.com/hilal-labs/ramadan-companion/internal/http/api"
	"github.com/hilal-labs/ramadan-companion/internal/http/api/packets"
	"github.com/hilal-labs/ramadan-companion/internal/state"
)

// BackupModule mounts the on-demand snapshot endpoint.
func BackupModule(provider *state.Provider, exporter backup.Exporter) api.Module {
	ctl := &backupController{provider: provider, exporter: exporter}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/backup", ctl.createBackup)
	})
}

type backupController struct {
	provider *state.Provider
	exporter backup.Exporter
}

// POST /api/backup
func (b *backupController) createBackup(ctx *gin.Context) (any, *api.Error) {
	snapshot, err := json.MarshalIndent(b.provider.Data(), "", "  ")
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not encode snapshot"}
	}

	location, err := b.exporter.Export(snapshot)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return packets.BackupResponse{Location: location}, nil
}
