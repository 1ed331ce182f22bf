package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lorak9904/RhetorAI/internal/api/errors"
	"github.com/Lorak9904/RhetorAI/internal/api/middleware"
	"github.com/Lorak9904/RhetorAI/internal/api/v1/services"
)

// ProviderHandler handles provider listing requests
type ProviderHandler struct {
	providerService services.ProviderService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(providerService services.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// List returns registered and active providers
// @Summary List providers
// @Tags providers
// @Produce json
// @Success 200 {object} dto.ProvidersResponse
// @Router /api/v1/providers [get]
func (h *ProviderHandler) List(c *gin.Context) {
	resp, err := h.providerService.ListProviders(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to list providers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
