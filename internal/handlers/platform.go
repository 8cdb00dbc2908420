// internal/handlers/platform.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jenny07007/deserhub-backend/internal/i18n"
	"github.com/jenny07007/deserhub-backend/internal/services"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

type PlatformHandler struct {
	platformService *services.PlatformService
}

func NewPlatformHandler(platformService *services.PlatformService) *PlatformHandler {
	return &PlatformHandler{platformService: platformService}
}

// POST /platforms
func (h *PlatformHandler) InitializePlatform(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	operatorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.InitializePlatformInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	platform, err := h.platformService.InitializePlatform(operatorID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyPlatformInitialized),
		"platform": platform,
	})
}

// GET /platforms/:id
func (h *PlatformHandler) GetPlatform(c *gin.Context) {
	platformID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	platform, err := h.platformService.GetPlatform(platformID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, platform)
}

// GET /platforms/:id/stats
func (h *PlatformHandler) GetStats(c *gin.Context) {
	platformID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.platformService.Stats(platformID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// POST /platforms/:id/withdraw
func (h *PlatformHandler) Withdraw(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	operatorID, ok := currentUserID(c)
	if !ok {
		return
	}
	platformID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input services.WithdrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	account, err := h.platformService.Withdraw(operatorID, platformID, input.Amount)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPlatformWithdrawn),
		"account": account,
	})
}
