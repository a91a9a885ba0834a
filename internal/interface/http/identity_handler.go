package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"devconnect/internal/application"
	"devconnect/internal/interface/middleware"
	"devconnect/pkg/response"
	"devconnect/pkg/validation"
)

type IdentityHandler struct {
	Svc    *application.IdentityService
	Logger *logrus.Logger
}

func NewIdentityHandler(svc *application.IdentityService, logger *logrus.Logger) *IdentityHandler {
	return &IdentityHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/users
func (h *IdentityHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToFieldErrors(err))
		return
	}

	token, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.ValidationErrors(c, []response.FieldError{{Msg: "User already exists in system"}})
			return
		}
		h.serverError(c, err, "register failed")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": token})
}

// Login handles POST /api/auth
func (h *IdentityHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToFieldErrors(err))
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.ValidationErrors(c, []response.FieldError{{Msg: "Invalid credentials"}})
			return
		}
		h.serverError(c, err, "login failed")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": token})
}

// CurrentUser handles GET /api/auth
func (h *IdentityHandler) CurrentUser(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		h.serverError(c, err, "current user lookup failed")
		return
	}
	response.JSON(c, http.StatusOK, u)
}

// UploadAvatar handles POST /api/users/me/avatar
func (h *IdentityHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		response.ValidationErrors(c, []response.FieldError{{Msg: "avatar file is required", Param: "avatar"}})
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.serverError(c, err, "avatar upload failed")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"avatar": url})
}

func (h *IdentityHandler) serverError(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	response.ServerError(c)
}
