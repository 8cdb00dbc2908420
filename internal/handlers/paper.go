// internal/handlers/paper.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jenny07007/deserhub-backend/internal/i18n"
	"github.com/jenny07007/deserhub-backend/internal/services"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

const downloadURLTTL = 15 * time.Minute

type PaperHandler struct {
	paperService   *services.PaperService
	passService    *services.PassService
	storageService *services.StorageService
}

func NewPaperHandler(paperService *services.PaperService, passService *services.PassService, storageService *services.StorageService) *PaperHandler {
	return &PaperHandler{
		paperService:   paperService,
		passService:    passService,
		storageService: storageService,
	}
}

// GET /papers
func (h *PaperHandler) GetPapers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var filters services.PaperFilters
	if openAccessStr := c.Query("open_access"); openAccessStr != "" {
		if openAccess, err := strconv.ParseBool(openAccessStr); err == nil {
			filters.OpenAccess = &openAccess
		}
	}
	if researcherIDStr := c.Query("researcher_id"); researcherIDStr != "" {
		if researcherID, err := uuid.Parse(researcherIDStr); err == nil {
			filters.ResearcherID = &researcherID
		}
	}
	if platformIDStr := c.Query("platform_id"); platformIDStr != "" {
		if platformID, err := uuid.Parse(platformIDStr); err == nil {
			filters.PlatformID = &platformID
		}
	}

	result, err := h.paperService.SearchPapers(params, filters)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /platforms/:id/papers
func (h *PaperHandler) CreatePaper(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	researcherID, ok := currentUserID(c)
	if !ok {
		return
	}
	platformID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input services.CreatePaperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	paper, err := h.paperService.CreatePaper(researcherID, platformID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaperCreated),
		"paper":   paper,
	})
}

// GET /papers/:id
func (h *PaperHandler) GetPaper(c *gin.Context) {
	paperID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	paper, err := h.paperService.GetPaper(paperID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, paper)
}

// POST /papers/upload
func (h *PaperHandler) UploadPaper(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	if _, ok := currentUserID(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadPaper(file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"upload":  result,
	})
}

// GET /papers/:id/download
func (h *PaperHandler) DownloadPaper(c *gin.Context) {
	readerID, ok := currentUserID(c)
	if !ok {
		return
	}
	paperID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	allowed, err := h.passService.HasAccess(readerID, paperID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !allowed {
		utils.ForbiddenResponse(c, "")
		return
	}

	paper, err := h.paperService.GetPaper(paperID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	url, err := h.storageService.GeneratePresignedURL(paper.URI, downloadURLTTL)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"url":        url,
		"expires_in": int(downloadURLTTL.Seconds()),
	})
}
