package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sumire/issue-tracker/internal/domain"
	"github.com/sumire/issue-tracker/internal/service"
)

// IssueHandler handles the /api/issues/:project route family.
type IssueHandler struct {
	issues *service.IssueService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issues *service.IssueService) *IssueHandler {
	return &IssueHandler{issues: issues}
}

// Register mounts the issue routes on e.
func (h *IssueHandler) Register(e *echo.Echo) {
	e.GET("/api/issues/:project", h.List)
	e.POST("/api/issues/:project", h.Create)
	e.PUT("/api/issues/:project", h.Update)
	e.DELETE("/api/issues/:project", h.Delete)
}

// List returns the project's issues matching every supplied query
// filter. Unknown projects and empty matches yield an empty array.
func (h *IssueHandler) List(c echo.Context) error {
	params := c.QueryParams()
	var filter domain.IssueFilter

	// The id filter is validated before any store access; a malformed
	// id is a query error, not a no-match outcome.
	if v, ok := queryValue(params, "id"); ok {
		id, err := domain.ParseID(v)
		if err != nil {
			return errorBody(c, err)
		}
		filter.ID = &id
	}
	if v, ok := queryValue(params, "open"); ok {
		open, err := strconv.ParseBool(v)
		if err != nil {
			return errorBody(c, err)
		}
		filter.Open = &open
	}
	if v, ok := queryValue(params, "issue_title"); ok {
		filter.IssueTitle = &v
	}
	if v, ok := queryValue(params, "issue_text"); ok {
		filter.IssueText = &v
	}
	if v, ok := queryValue(params, "created_by"); ok {
		filter.CreatedBy = &v
	}
	if v, ok := queryValue(params, "assigned_to"); ok {
		filter.AssignedTo = &v
	}
	if v, ok := queryValue(params, "status_text"); ok {
		filter.StatusText = &v
	}

	issues, err := h.issues.List(c.Request().Context(), c.Param("project"), filter)
	if err != nil {
		return errorBody(c, err)
	}
	return c.JSON(http.StatusOK, issues)
}

func queryValue(params url.Values, key string) (string, bool) {
	if !params.Has(key) {
		return "", false
	}
	return params.Get(key), true
}

type createIssueRequest struct {
	IssueTitle string `json:"issue_title" form:"issue_title" validate:"required"`
	IssueText  string `json:"issue_text" form:"issue_text" validate:"required"`
	CreatedBy  string `json:"created_by" form:"created_by" validate:"required"`
	AssignedTo string `json:"assigned_to" form:"assigned_to"`
	StatusText string `json:"status_text" form:"status_text"`
}

// Create adds a new issue to the project, creating the project if
// needed, and responds with the full created issue.
func (h *IssueHandler) Create(c echo.Context) error {
	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return errorMessage(c, "required field(s) missing")
	}
	if err := c.Validate(&req); err != nil {
		return errorMessage(c, "required field(s) missing")
	}

	issue, err := h.issues.Create(c.Request().Context(), c.Param("project"), service.CreateIssueInput{
		IssueTitle: req.IssueTitle,
		IssueText:  req.IssueText,
		CreatedBy:  req.CreatedBy,
		AssignedTo: req.AssignedTo,
		StatusText: req.StatusText,
	})
	if err != nil {
		return errorBody(c, err)
	}
	return c.JSON(http.StatusOK, issue)
}

type updateIssueRequest struct {
	ID         string `json:"id" form:"id"`
	IssueTitle string `json:"issue_title" form:"issue_title"`
	IssueText  string `json:"issue_text" form:"issue_text"`
	CreatedBy  string `json:"created_by" form:"created_by"`
	AssignedTo string `json:"assigned_to" form:"assigned_to"`
	StatusText string `json:"status_text" form:"status_text"`
	Open       bool   `json:"open" form:"open"`
}

// Update merges the supplied fields into the target issue.
func (h *IssueHandler) Update(c echo.Context) error {
	var req updateIssueRequest
	if err := c.Bind(&req); err != nil {
		return errorBody(c, err)
	}
	if req.ID == "" {
		return errorMessage(c, "missing id")
	}

	in := service.UpdateIssueInput{
		ID:         req.ID,
		IssueTitle: req.IssueTitle,
		IssueText:  req.IssueText,
		CreatedBy:  req.CreatedBy,
		AssignedTo: req.AssignedTo,
		StatusText: req.StatusText,
		Open:       req.Open,
	}
	if !in.HasFields() {
		return errorWithID(c, "no update field(s) sent", req.ID)
	}

	err := h.issues.Update(c.Request().Context(), c.Param("project"), in)
	switch {
	case err == nil:
		return resultWithID(c, "successfully updated", req.ID)
	case errors.Is(err, domain.ErrMalformedID):
		return errorBody(c, err)
	default:
		return errorWithID(c, "could not update", req.ID)
	}
}

type deleteIssueRequest struct {
	ID string `json:"id" form:"id"`
}

// Delete removes the issue from its project's sequence.
func (h *IssueHandler) Delete(c echo.Context) error {
	var req deleteIssueRequest
	if err := c.Bind(&req); err != nil {
		return errorBody(c, err)
	}
	if req.ID == "" {
		return errorMessage(c, "missing id")
	}

	err := h.issues.Delete(c.Request().Context(), c.Param("project"), req.ID)
	switch {
	case err == nil:
		return resultWithID(c, "successfully deleted", req.ID)
	case errors.Is(err, domain.ErrMalformedID):
		return errorBody(c, err)
	default:
		return errorWithID(c, "could not delete", req.ID)
	}
}
