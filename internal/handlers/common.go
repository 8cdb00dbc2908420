// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jenny07007/deserhub-backend/internal/services"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

// currentUserID pulls the authenticated user's ID out of the request context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps rule violations to their HTTP status and code;
// anything else is an internal error.
func handleServiceError(c *gin.Context, err error) {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		utils.ErrorResponse(c, domainErr.Status, domainErr.Code, domainErr.Message, nil)
		return
	}
	utils.InternalErrorResponse(c, err.Error())
}
