package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/request"
	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/service"
)

type CatalogService[T any] interface {
	Create(ctx context.Context, item T) (T, error)
	Get(ctx context.Context, id uint) (T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id uint, item T) (T, error)
	Delete(ctx context.Context, id uint) error
}

// catalogRequest is a pointer to a request body that converts to T.
type catalogRequest[T, Q any] interface {
	*Q
	validatable
	ToDomain() T
}

// catalogHandler serves the list/get/create/update/delete routes shared by
// achievements and courses.
type catalogHandler[T, Q any, PQ catalogRequest[T, Q]] struct {
	svc      CatalogService[T]
	name     string
	param    string
	notFound error
}

func (h *catalogHandler[T, Q, PQ]) list(ctx *gin.Context) {
	items, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		h.renderErr(ctx, "h.svc.List", 0, err)
		return
	}

	response.Render(ctx, http.StatusOK, h.name+"s retrieved successfully", items)
}

func (h *catalogHandler[T, Q, PQ]) get(ctx *gin.Context) {
	id, ok := parseID(ctx, h.param)
	if !ok {
		return
	}

	item, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		h.renderErr(ctx, "h.svc.Get", id, err)
		return
	}

	response.Render(ctx, http.StatusOK, h.name+" retrieved successfully", item)
}

func (h *catalogHandler[T, Q, PQ]) create(ctx *gin.Context) {
	var req Q
	if !bindJSON(ctx, PQ(&req)) {
		return
	}

	item, err := h.svc.Create(ctx.Request.Context(), PQ(&req).ToDomain())
	if err != nil {
		h.renderErr(ctx, "h.svc.Create", 0, err)
		return
	}

	response.Render(ctx, http.StatusCreated, h.name+" created successfully", item)
}

func (h *catalogHandler[T, Q, PQ]) update(ctx *gin.Context) {
	id, ok := parseID(ctx, h.param)
	if !ok {
		return
	}

	var req Q
	if !bindJSON(ctx, PQ(&req)) {
		return
	}

	item, err := h.svc.Update(ctx.Request.Context(), id, PQ(&req).ToDomain())
	if err != nil {
		h.renderErr(ctx, "h.svc.Update", id, err)
		return
	}

	response.Render(ctx, http.StatusOK, h.name+" updated successfully", item)
}

func (h *catalogHandler[T, Q, PQ]) delete(ctx *gin.Context) {
	id, ok := parseID(ctx, h.param)
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		h.renderErr(ctx, "h.svc.Delete", id, err)
		return
	}

	response.Render(ctx, http.StatusOK, h.name+" deleted successfully", nil)
}

func (h *catalogHandler[T, Q, PQ]) renderErr(ctx *gin.Context, op string, id uint, err error) {
	if errors.Is(err, h.notFound) {
		response.RenderErr(ctx, response.ErrNotFound(h.name, "id", id))
		return
	}

	err = fmt.Errorf("v1.%sHandler -> %s -> %w", h.name, op, err)
	response.RenderErr(ctx, response.ErrInternalServerError(err))
}

type AchievementHandler struct {
	catalog *catalogHandler[domain.Achievement, request.AchievementRequest, *request.AchievementRequest]
}

func NewAchievementHandler(svc CatalogService[domain.Achievement]) *AchievementHandler {
	return &AchievementHandler{
		catalog: &catalogHandler[domain.Achievement, request.AchievementRequest, *request.AchievementRequest]{
			svc:      svc,
			name:     "Achievement",
			param:    "achievementID",
			notFound: service.ErrAchievementNotFound,
		},
	}
}

// HandleListAchievements godoc
// @Summary      List achievements
// @Tags         achievements
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.Achievement}
// @Failure      500  {object}  response.Err
// @Router       /achievements [get]
func (h *AchievementHandler) HandleListAchievements(ctx *gin.Context) {
	h.catalog.list(ctx)
}

// HandleGetAchievement godoc
// @Summary      Get an achievement
// @Tags         achievements
// @Produce      json
// @Param        achievementID  path      int  true  "achievement ID"
// @Success      200            {object}  response.Envelope{data=domain.Achievement}
// @Failure      400            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /achievements/{achievementID} [get]
func (h *AchievementHandler) HandleGetAchievement(ctx *gin.Context) {
	h.catalog.get(ctx)
}

// HandleCreateAchievement godoc
// @Summary      Create an achievement
// @Tags         achievements
// @Accept       json
// @Produce      json
// @Param        request  body      request.AchievementRequest  true  "request body"
// @Success      201      {object}  response.Envelope{data=domain.Achievement}
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /achievements [post]
// @Security     BearerAuth
func (h *AchievementHandler) HandleCreateAchievement(ctx *gin.Context) {
	h.catalog.create(ctx)
}

// HandleUpdateAchievement godoc
// @Summary      Replace an achievement
// @Tags         achievements
// @Accept       json
// @Produce      json
// @Param        achievementID  path      int                         true  "achievement ID"
// @Param        request        body      request.AchievementRequest  true  "request body"
// @Success      200            {object}  response.Envelope{data=domain.Achievement}
// @Failure      400            {object}  response.Err
// @Failure      403            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /achievements/{achievementID} [patch]
// @Security     BearerAuth
func (h *AchievementHandler) HandleUpdateAchievement(ctx *gin.Context) {
	h.catalog.update(ctx)
}

// HandleDeleteAchievement godoc
// @Summary      Delete an achievement
// @Tags         achievements
// @Produce      json
// @Param        achievementID  path      int  true  "achievement ID"
// @Success      200            {object}  response.Envelope
// @Failure      400            {object}  response.Err
// @Failure      403            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /achievements/{achievementID} [delete]
// @Security     BearerAuth
func (h *AchievementHandler) HandleDeleteAchievement(ctx *gin.Context) {
	h.catalog.delete(ctx)
}

type CourseHandler struct {
	catalog *catalogHandler[domain.Course, request.CourseRequest, *request.CourseRequest]
}

func NewCourseHandler(svc CatalogService[domain.Course]) *CourseHandler {
	return &CourseHandler{
		catalog: &catalogHandler[domain.Course, request.CourseRequest, *request.CourseRequest]{
			svc:      svc,
			name:     "Course",
			param:    "courseID",
			notFound: service.ErrCourseNotFound,
		},
	}
}

// HandleListCourses godoc
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.Course}
// @Failure      500  {object}  response.Err
// @Router       /courses [get]
func (h *CourseHandler) HandleListCourses(ctx *gin.Context) {
	h.catalog.list(ctx)
}

// HandleGetCourse godoc
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        courseID  path      int  true  "course ID"
// @Success      200       {object}  response.Envelope{data=domain.Course}
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /courses/{courseID} [get]
func (h *CourseHandler) HandleGetCourse(ctx *gin.Context) {
	h.catalog.get(ctx)
}

// HandleCreateCourse godoc
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        request  body      request.CourseRequest  true  "request body"
// @Success      201      {object}  response.Envelope{data=domain.Course}
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /courses [post]
// @Security     BearerAuth
func (h *CourseHandler) HandleCreateCourse(ctx *gin.Context) {
	h.catalog.create(ctx)
}

// HandleUpdateCourse godoc
// @Summary      Replace a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        courseID  path      int                    true  "course ID"
// @Param        request   body      request.CourseRequest  true  "request body"
// @Success      200       {object}  response.Envelope{data=domain.Course}
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /courses/{courseID} [patch]
// @Security     BearerAuth
func (h *CourseHandler) HandleUpdateCourse(ctx *gin.Context) {
	h.catalog.update(ctx)
}

// HandleDeleteCourse godoc
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Param        courseID  path      int  true  "course ID"
// @Success      200       {object}  response.Envelope
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /courses/{courseID} [delete]
// @Security     BearerAuth
func (h *CourseHandler) HandleDeleteCourse(ctx *gin.Context) {
	h.catalog.delete(ctx)
}
