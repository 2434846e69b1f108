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

// MemberHandler handles roster endpoints.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// CreateMemberRequest represents a member create payload.
type CreateMemberRequest struct {
	Name     string     `json:"name" validate:"required"`
	Roadname string     `json:"roadname"`
	Rank     string     `json:"rank" validate:"required"`
	Chapter  string     `json:"chapter" validate:"required"`
	Bio      string     `json:"bio" validate:"required"`
	Image    string     `json:"image" validate:"omitempty,url"`
	JoinDate *time.Time `json:"joinDate"`
}

// UpdateMemberRequest represents a partial member update payload.
type UpdateMemberRequest struct {
	Name     *string    `json:"name"`
	Roadname *string    `json:"roadname"`
	Rank     *string    `json:"rank"`
	Chapter  *string    `json:"chapter"`
	Bio      *string    `json:"bio"`
	Image    *string    `json:"image" validate:"omitempty"`
	JoinDate *time.Time `json:"joinDate"`
	IsActive *bool      `json:"isActive"`
}

// List godoc
// @Summary List members
// @Tags members
// @Produce json
// @Param rank query string false "Filter by rank"
// @Param chapter query string false "Filter by chapter"
// @Param search query string false "Case-insensitive search over name, roadname, rank, chapter, bio"
// @Success 200 {array} model.Member
// @Failure 500 {object} errors.ErrorResponse
// @Router /meetthesouls [get]
func (h *MemberHandler) List(c echo.Context) error {
	filters := repository.MemberFilters{
		Rank:    c.QueryParam("rank"),
		Chapter: c.QueryParam("chapter"),
		Search:  c.QueryParam("search"),
	}

	members, err := h.memberService.List(c.Request().Context(), filters)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

// Get godoc
// @Summary Get a member by id
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} model.Member
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meetthesouls/{id} [get]
func (h *MemberHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	member, err := h.memberService.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, member)
}

// Ranks godoc
// @Summary List ranks in use with counts
// @Tags members
// @Produce json
// @Success 200 {array} model.RankCount
// @Failure 500 {object} errors.ErrorResponse
// @Router /meetthesouls/ranks [get]
func (h *MemberHandler) Ranks(c echo.Context) error {
	ranks, err := h.memberService.Ranks(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, ranks)
}

// Chapters godoc
// @Summary List chapters in use with counts
// @Tags members
// @Produce json
// @Success 200 {array} model.ChapterCount
// @Failure 500 {object} errors.ErrorResponse
// @Router /meetthesouls/chapters [get]
func (h *MemberHandler) Chapters(c echo.Context) error {
	chapters, err := h.memberService.Chapters(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, chapters)
}

// Create godoc
// @Summary Create a member
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMemberRequest true "Member payload"
// @Success 201 {object} model.Member
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/members [post]
func (h *MemberHandler) Create(c echo.Context) error {
	var req CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "name, rank, chapter, and bio are required")
	}

	member := &model.Member{
		Name:     req.Name,
		Roadname: req.Roadname,
		Rank:     req.Rank,
		Chapter:  req.Chapter,
		Bio:      req.Bio,
		Image:    req.Image,
		JoinDate: req.JoinDate,
	}

	created, err := h.memberService.Create(c.Request().Context(), member)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update a member
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param request body UpdateMemberRequest true "Fields to update"
// @Success 200 {object} model.Member
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/members/{id} [put]
func (h *MemberHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := h.memberService.Update(c.Request().Context(), id, service.MemberUpdate{
		Name:     req.Name,
		Roadname: req.Roadname,
		Rank:     req.Rank,
		Chapter:  req.Chapter,
		Bio:      req.Bio,
		Image:    req.Image,
		JoinDate: req.JoinDate,
		IsActive: req.IsActive,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a member
// @Description Users linked to the member keep their account; the link is nulled.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/members/{id} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.memberService.Delete(c.Request().Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Member deleted successfully",
	})
}

// Stats godoc
// @Summary Roster statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MemberStats
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/members/stats [get]
func (h *MemberHandler) Stats(c echo.Context) error {
	stats, err := h.memberService.Stats(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *MemberHandler) mapError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	if he.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// parseID reads the :id path param as an unsigned integer.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
