package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schedly/services/gateway"
)

// ResourceHandler serves the full resource directories consumed by the
// creation/edit form. The core diffing logic never touches these.
type ResourceHandler struct {
	Gateway gateway.Gateway
}

func NewResourceHandler(gw gateway.Gateway) *ResourceHandler {
	return &ResourceHandler{Gateway: gw}
}

func (h *ResourceHandler) ListClients(c *gin.Context) {
	c.JSON(http.StatusOK, h.Gateway.FetchClients(c.Request.Context()))
}

func (h *ResourceHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.Gateway.FetchServices(c.Request.Context()))
}

func (h *ResourceHandler) ListWorkers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Gateway.FetchWorkers(c.Request.Context()))
}

func (h *ResourceHandler) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, h.Gateway.FetchLocations(c.Request.Context()))
}
