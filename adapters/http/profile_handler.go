package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/devconnect/devconnect-api/internal/application/usecase/profile"
	"github.com/devconnect/devconnect-api/pkg/apperror"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	p, err := h.profileUseCase.GetOwnProfile(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	input := profileUC.UpsertProfileInput{
		OwnerID: ownerID,
		Fields:  req.ToSparseInput(),
	}
	p, err := h.profileUseCase.UpsertProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	profiles, err := h.profileUseCase.ListProfiles(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTOs(profiles))
}

func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("user_id is not a valid uuid", err))
		return
	}

	p, err := h.profileUseCase.GetProfileByOwnerID(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	if err := h.profileUseCase.DeleteAccount(c.Request.Context(), ownerID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	input := profileUC.AddExperienceInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	p, err := h.profileUseCase.AddExperience(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("exp_id is not a valid uuid", err))
		return
	}

	p, err := h.profileUseCase.RemoveExperience(c.Request.Context(), ownerID, entryID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	input := profileUC.AddEducationInput{
		OwnerID:     ownerID,
		School:      req.School,
		Degree:      req.Degree,
		Majors:      req.Majors,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	p, err := h.profileUseCase.AddEducation(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("edu_id is not a valid uuid", err))
		return
	}

	p, err := h.profileUseCase.RemoveEducation(c.Request.Context(), ownerID, entryID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}
