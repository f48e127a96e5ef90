package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/requestdata"
	"github.com/Tetraslam/onemonth-dev/internal/services"
)

type CurriculumHandler struct {
	log               *logger.Logger
	curriculumService services.CurriculumService
	generationService services.GenerationService
}

func NewCurriculumHandler(
	log *logger.Logger,
	curriculumService services.CurriculumService,
	generationService services.GenerationService,
) *CurriculumHandler {
	return &CurriculumHandler{
		log:               log.With("handler", "CurriculumHandler"),
		curriculumService: curriculumService,
		generationService: generationService,
	}
}

// POST /api/curricula
func (h *CurriculumHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var input services.CreateCurriculumInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	curriculum, run, err := h.generationService.Enqueue(c.Request.Context(), rd.UserID, input)
	if err != nil {
		h.log.Error("Enqueue failed", "error", err, "user_id", rd.UserID)
		RespondError(c, http.StatusInternalServerError, "enqueue_failed", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"curriculum": curriculum, "run": run})
}

// GET /api/curricula
func (h *CurriculumHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	curricula, err := h.curriculumService.List(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("List failed", "error", err, "user_id", rd.UserID)
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"curricula": curricula})
}

// GET /api/curricula/:id
func (h *CurriculumHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	curriculumID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_curriculum_id", err)
		return
	}
	curriculum, days, err := h.curriculumService.Get(c.Request.Context(), rd.UserID, curriculumID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "curriculum_not_found", err)
		return
	}
	RespondOK(c, gin.H{"curriculum": curriculum, "days": days})
}

// GET /api/curricula/:id/status
func (h *CurriculumHandler) Status(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	curriculumID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_curriculum_id", err)
		return
	}
	curriculum, run, err := h.generationService.Status(c.Request.Context(), rd.UserID, curriculumID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "curriculum_not_found", err)
		return
	}
	// run can be nil if the row predates the run table
	RespondOK(c, gin.H{
		"generation_status":   curriculum.GenerationStatus,
		"generation_progress": curriculum.GenerationProgress,
		"run":                 run,
	})
}

// POST /api/curricula/:id/retry
func (h *CurriculumHandler) Retry(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	curriculumID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_curriculum_id", err)
		return
	}
	run, err := h.generationService.Retry(c.Request.Context(), rd.UserID, curriculumID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "retry_failed", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"run": run})
}

// POST /api/curricula/:id/days/:day_id/regenerate
func (h *CurriculumHandler) RegenerateDay(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	curriculumID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_curriculum_id", err)
		return
	}
	dayID, err := uuid.Parse(c.Param("day_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_day_id", err)
		return
	}

	var body struct {
		ImprovementPrompt string `json:"improvement_prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	day, err := h.generationService.RegenerateDay(c.Request.Context(), rd.UserID, curriculumID, dayID, body.ImprovementPrompt)
	if err != nil {
		h.log.Error("RegenerateDay failed", "error", err, "curriculum_id", curriculumID, "day_id", dayID)
		RespondError(c, http.StatusInternalServerError, "regenerate_failed", err)
		return
	}
	RespondOK(c, gin.H{"day": day})
}

// DELETE /api/curricula/:id
func (h *CurriculumHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	curriculumID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_curriculum_id", err)
		return
	}
	if err := h.curriculumService.Delete(c.Request.Context(), rd.UserID, curriculumID); err != nil {
		RespondError(c, http.StatusNotFound, "curriculum_not_found", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
