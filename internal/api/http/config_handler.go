package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	oceans Inspector
}

func NewConfigHandler(ins Inspector) *ConfigHandler {
	return &ConfigHandler{oceans: ins}
}

// GetOceanConfigHandler returns the settings an ocean was created with
// @Summary Get ocean config
// @Description Returns the board-supplied config, including settings the server does not interpret
// @Tags Config
// @Produce json
// @Param id path string true "Ocean ID"
// @Success 200 {object} OceanConfigResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/oceans/{id}/config [get]
func (h *ConfigHandler) GetOceanConfigHandler(c *gin.Context) {
	id := c.Param("id")
	o, ok := h.oceans.Snapshot(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ocean not found"})
		return
	}

	c.JSON(http.StatusOK, OceanConfigResponse{
		OceanID: id,
		Config:  o.Config,
	})
}
