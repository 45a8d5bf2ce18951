package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/service"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
	"github.com/uniplan/uniplan-api/pkg/response"
)

// CourseOfferingHandler exposes course offering endpoints.
type CourseOfferingHandler struct {
	service *service.CourseOfferingService
}

// NewCourseOfferingHandler constructs a course offering handler.
func NewCourseOfferingHandler(svc *service.CourseOfferingService) *CourseOfferingHandler {
	return &CourseOfferingHandler{service: svc}
}

// List godoc
// @Summary List course offerings
// @Tags CourseOfferings
// @Produce json
// @Param termId query string false "Filter by term"
// @Param courseId query string false "Filter by course"
// @Param instructorId query string false "Filter by instructor"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /course-offerings [get]
func (h *CourseOfferingHandler) List(c *gin.Context) {
	var filter models.CourseOfferingFilter
	filter.TermID = c.Query("termId")
	filter.CourseID = c.Query("courseId")
	filter.InstructorID = c.Query("instructorId")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	offerings, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offerings, pagination)
}

// Get godoc
// @Summary Get course offering by ID
// @Tags CourseOfferings
// @Produce json
// @Param id path string true "Offering ID"
// @Success 200 {object} response.Envelope
// @Router /course-offerings/{id} [get]
func (h *CourseOfferingHandler) Get(c *gin.Context) {
	offering, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offering, nil)
}

// Create godoc
// @Summary Create course offering
// @Tags CourseOfferings
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseOfferingRequest true "Offering payload"
// @Success 201 {object} response.Envelope
// @Router /course-offerings [post]
func (h *CourseOfferingHandler) Create(c *gin.Context) {
	var req service.CreateCourseOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offering, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, offering)
}

// Update godoc
// @Summary Update course offering
// @Tags CourseOfferings
// @Accept json
// @Produce json
// @Param id path string true "Offering ID"
// @Param payload body service.UpdateCourseOfferingRequest true "Offering payload"
// @Success 200 {object} response.Envelope
// @Router /course-offerings/{id} [put]
func (h *CourseOfferingHandler) Update(c *gin.Context) {
	var req service.UpdateCourseOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offering, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offering, nil)
}

// Delete godoc
// @Summary Delete course offering
// @Tags CourseOfferings
// @Param id path string true "Offering ID"
// @Success 204
// @Router /course-offerings/{id} [delete]
func (h *CourseOfferingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
