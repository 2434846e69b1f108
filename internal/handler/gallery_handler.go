package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "soulsmc/internal/errors"
	"soulsmc/internal/model"
	"soulsmc/internal/repository"
	"soulsmc/internal/service"
)

// GalleryHandler handles gallery endpoints.
type GalleryHandler struct {
	galleryService service.GalleryService
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(galleryService service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// CreateGalleryRequest represents a gallery image create payload.
type CreateGalleryRequest struct {
	Title       string   `json:"title" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"required"`
	ImageURL    string   `json:"imageUrl" validate:"required,url"`
	Tags        []string `json:"tags"`
	Members     []string `json:"members"`
	Featured    bool     `json:"featured"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
}

// UpdateGalleryRequest represents a partial gallery image update payload.
type UpdateGalleryRequest struct {
	Title       *string   `json:"title"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Tags        *[]string `json:"tags"`
	Members     *[]string `json:"members"`
	Featured    *bool     `json:"featured"`
	Location    *string   `json:"location"`
	Date        *string   `json:"date"`
}

// List godoc
// @Summary List gallery images
// @Description Filters are conjunctive. The total matching count is returned in X-Total-Count.
// @Tags gallery
// @Produce json
// @Param category query string false "Filter by category; 'all' disables the filter"
// @Param featured query bool false "Filter by featured flag"
// @Param search query string false "Case-insensitive search over title, description, location, tags, members"
// @Param member query string false "Substring match against the members list"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param page query int false "Page number (1-based)"
// @Param itemsPerPage query int false "Page size"
// @Success 200 {array} model.GalleryImage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /gallery [get]
func (h *GalleryHandler) List(c echo.Context) error {
	filters, err := parseGalleryFilters(c)
	if err != nil {
		return err
	}

	images, total, err := h.galleryService.List(c.Request().Context(), filters)
	if err != nil {
		return h.mapError(c, err)
	}

	c.Response().Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, images)
}

// Get godoc
// @Summary Get a gallery image by id
// @Tags gallery
// @Produce json
// @Param id path int true "Image ID"
// @Success 200 {object} model.GalleryImage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /gallery/{id} [get]
func (h *GalleryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	image, err := h.galleryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, image)
}

// Categories godoc
// @Summary List categories in use with counts
// @Tags gallery
// @Produce json
// @Success 200 {array} model.CategoryCount
// @Failure 500 {object} errors.ErrorResponse
// @Router /gallery/categories [get]
func (h *GalleryHandler) Categories(c echo.Context) error {
	categories, err := h.galleryService.Categories(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Create godoc
// @Summary Create a gallery image
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGalleryRequest true "Image payload"
// @Success 201 {object} model.GalleryImage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/gallery [post]
func (h *GalleryHandler) Create(c echo.Context) error {
	var req CreateGalleryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "title, category, description, and imageUrl are required")
	}

	image := &model.GalleryImage{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Tags:        model.StringList(req.Tags),
		Members:     model.StringList(req.Members),
		Featured:    req.Featured,
		Location:    req.Location,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "invalid date",
				Code:  "INVALID_DATE",
			})
		}
		image.Date = date
	}

	created, err := h.galleryService.Create(c.Request().Context(), image)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update a gallery image
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Param request body UpdateGalleryRequest true "Fields to update"
// @Success 200 {object} model.GalleryImage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/gallery/{id} [put]
func (h *GalleryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateGalleryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	update := service.GalleryUpdate{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		Location:    req.Location,
	}
	if req.Tags != nil {
		tags := model.StringList(*req.Tags)
		update.Tags = &tags
	}
	if req.Members != nil {
		members := model.StringList(*req.Members)
		update.Members = &members
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "invalid date",
				Code:  "INVALID_DATE",
			})
		}
		update.Date = &date
	}

	updated, err := h.galleryService.Update(c.Request().Context(), id, update)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a gallery image
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/gallery/{id} [delete]
func (h *GalleryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.galleryService.Delete(c.Request().Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Image deleted successfully",
	})
}

func (h *GalleryHandler) mapError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	if he.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

func parseGalleryFilters(c echo.Context) (repository.GalleryFilters, error) {
	filters := repository.GalleryFilters{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Member:   c.QueryParam("member"),
	}

	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "featured must be true or false",
				Code:  "INVALID_FILTER",
			})
		}
		filters.Featured = &featured
	}

	for param, dest := range map[string]**time.Time{
		"startDate": &filters.StartDate,
		"endDate":   &filters.EndDate,
	} {
		if raw := c.QueryParam(param); raw != "" {
			date, err := parseDate(raw)
			if err != nil {
				return filters, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
					Error: param + " must be a date",
					Code:  "INVALID_FILTER",
				})
			}
			*dest = &date
		}
	}

	for param, dest := range map[string]*int{
		"page":         &filters.Page,
		"itemsPerPage": &filters.ItemsPerPage,
	} {
		if raw := c.QueryParam(param); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				return filters, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
					Error: param + " must be a positive integer",
					Code:  "INVALID_FILTER",
				})
			}
			*dest = n
		}
	}

	return filters, nil
}

// parseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", raw); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, raw)
}
