package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

// AuthService is the business API the handlers call.
type AuthService interface {
	Register(ctx context.Context, username, password, displayName string) (*services.AuthResult, error)
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
	WhoAmI(ctx context.Context, token string) (*models.User, error)
}

// loginRequest has no required fields: empty credentials are rejected as
// invalid credentials, not as a malformed request.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type authResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

type meResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type handler struct {
	svc    AuthService
	logger logging.Logger
}

func (h *handler) register(r gin.IRouter) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	{
		api.POST("/login", h.login)
		api.POST("/register", h.registerUser)
		api.GET("/me", h.me)
	}
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, common.ErrValidation)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{Token: res.Token, Name: res.Name})
}

func (h *handler) registerUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, common.ErrValidation)
		return
	}

	res, err := h.svc.Register(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{Token: res.Token, Name: res.Name})
}

func (h *handler) me(c *gin.Context) {
	token, err := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
	if err != nil {
		h.writeError(c, err)
		return
	}

	u, err := h.svc.WhoAmI(c.Request.Context(), token)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, meResponse{ID: u.ID, Username: u.UserName, Name: u.DisplayName})
}

// bearerToken extracts the token from an Authorization header value.
// A missing header or token part yields errNoToken, a scheme other than
// Bearer yields common.ErrInvalidToken.
func bearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", errNoToken
	}
	if !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrInvalidToken
	}
	return token, nil
}
