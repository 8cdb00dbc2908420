// internal/handlers/pass.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jenny07007/deserhub-backend/internal/i18n"
	"github.com/jenny07007/deserhub-backend/internal/services"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

type PassHandler struct {
	passService *services.PassService
}

func NewPassHandler(passService *services.PassService) *PassHandler {
	return &PassHandler{passService: passService}
}

// POST /passes
func (h *PassHandler) PayPass(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	readerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.PayPassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	pass, err := h.passService.PayPass(readerID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPassPurchased),
		"pass":    pass,
	})
}

// GET /passes/:id
func (h *PassHandler) GetPass(c *gin.Context) {
	passID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	pass, err := h.passService.GetPass(passID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, pass)
}

// GET /passes
func (h *PassHandler) GetMyPasses(c *gin.Context) {
	readerID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.passService.GetUserPasses(readerID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, *result)
}
