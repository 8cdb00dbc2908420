// internal/handlers/credential.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jenny07007/deserhub-backend/internal/i18n"
	"github.com/jenny07007/deserhub-backend/internal/services"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

type CredentialHandler struct {
	credentialService *services.CredentialService
}

func NewCredentialHandler(credentialService *services.CredentialService) *CredentialHandler {
	return &CredentialHandler{credentialService: credentialService}
}

// POST /credentials
func (h *CredentialHandler) MintCredential(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.MintCredentialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	credential, err := h.credentialService.MintCredential(callerID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyCredentialIssued),
		"credential": credential,
	})
}

// GET /credentials/:id
func (h *CredentialHandler) GetCredential(c *gin.Context) {
	credentialID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	credential, err := h.credentialService.GetCredential(credentialID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, credential)
}

// GET /credentials
func (h *CredentialHandler) GetMyCredentials(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.credentialService.GetUserCredentials(ownerID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, *result)
}
