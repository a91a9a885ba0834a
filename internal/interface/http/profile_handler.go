package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"devconnect/internal/application"
	"devconnect/internal/domain/entity"
	"devconnect/internal/domain/repository"
	"devconnect/internal/interface/middleware"
	"devconnect/pkg/response"
	"devconnect/pkg/validation"
)

const noProfileMsg = "There is no profile for this user"

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type upsertProfileRequest struct {
	Status string `json:"status" binding:"required"`
	Skills string `json:"skills" binding:"required"`

	Company    *string `json:"company"`
	Website    *string `json:"website"`
	Location   *string `json:"location"`
	Bio        *string `json:"bio"`
	GithubUser *string `json:"githubusername"`

	Youtube   *string `json:"youtube"`
	Twitter   *string `json:"twitter"`
	Facebook  *string `json:"facebook"`
	Linkedin  *string `json:"linkedin"`
	Instagram *string `json:"instagram"`
}

type addExperienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Me handles GET /api/profile/me
func (h *ProfileHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.GetOwnProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Msg(c, http.StatusBadRequest, "No profile found for this user")
			return
		}
		h.serverError(c, err, "get own profile failed")
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Upsert handles POST /api/profile
func (h *ProfileHandler) Upsert(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToFieldErrors(err))
		return
	}

	view, err := h.Svc.UpsertProfile(c.Request.Context(), uid, application.UpsertProfileInput{
		Status:     req.Status,
		Skills:     req.Skills,
		Company:    req.Company,
		Website:    req.Website,
		Location:   req.Location,
		Bio:        req.Bio,
		GithubUser: req.GithubUser,
		Youtube:    req.Youtube,
		Twitter:    req.Twitter,
		Facebook:   req.Facebook,
		Linkedin:   req.Linkedin,
		Instagram:  req.Instagram,
	})
	if err != nil {
		h.serverError(c, err, "upsert profile failed")
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// List handles GET /api/profile
func (h *ProfileHandler) List(c *gin.Context) {
	views, err := h.Svc.ListProfiles(c.Request.Context())
	if err != nil {
		h.serverError(c, err, "list profiles failed")
		return
	}
	response.JSON(c, http.StatusOK, views)
}

// ByUser handles GET /api/profile/user/:user_id
func (h *ProfileHandler) ByUser(c *gin.Context) {
	view, err := h.Svc.GetProfileByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Msg(c, http.StatusBadRequest, noProfileMsg)
			return
		}
		h.serverError(c, err, "get profile by user failed")
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Search handles GET /api/profile/search
func (h *ProfileHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.ValidationErrors(c, []response.FieldError{{Msg: "q is required", Param: "q"}})
		return
	}
	size := 10
	if s := c.Query("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			size = n
		}
	}
	hits, err := h.Svc.SearchProfiles(c.Request.Context(), q, size)
	if err != nil {
		h.serverError(c, err, "search profiles failed")
		return
	}
	response.JSON(c, http.StatusOK, hits)
}

// Delete handles DELETE /api/profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteOwnAccount(c.Request.Context(), uid); err != nil {
		h.serverError(c, err, "delete account failed")
		return
	}
	response.Msg(c, http.StatusOK, "User deleted successfully")
}

// AddExperience handles PUT /api/profile/experience
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req addExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToFieldErrors(err))
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		response.ValidationErrors(c, []response.FieldError{{Msg: "from must be a valid date", Param: "from"}})
		return
	}
	exp := entity.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		Current:     req.Current,
		Description: req.Description,
	}
	if req.To != "" {
		to, err := parseDate(req.To)
		if err != nil {
			response.ValidationErrors(c, []response.FieldError{{Msg: "to must be a valid date", Param: "to"}})
			return
		}
		exp.To = &to
	}

	view, err := h.Svc.AddExperience(c.Request.Context(), uid, exp)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Msg(c, http.StatusBadRequest, "No profile found for this user")
			return
		}
		h.serverError(c, err, "add experience failed")
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// parseDate accepts plain dates and full RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *ProfileHandler) serverError(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	response.ServerError(c)
}
