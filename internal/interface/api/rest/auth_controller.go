package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/application/services"
	userDB "excel-analytics-api/internal/infrastructure/db/postgres/user"
	"excel-analytics-api/internal/interface/api/rest/dto/auth"
	"excel-analytics-api/internal/interface/api/rest/dto/user"
	"excel-analytics-api/internal/interface/api/rest/middleware"
	"excel-analytics-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.AuthService,
	authMW gin.HandlerFunc,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)
	r.GET(RouteMe, authMW, ac.MeHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, token, err := ac.authService.Register(c.Request.Context(), ports.RegisterInput{
		Name:        strings.TrimSpace(req.Name),
		Email:       validator.NormalizeEmail(req.Email),
		Password:    req.Password,
		IsAdmin:     req.IsAdmin,
		AdminSecret: req.AdminSecret,
	})
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid admin secret"})
			return
		}
		if errors.Is(err, userDB.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to register a user"},
		)
		ac.logger.Error("Register() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        user.ToResponseUser(*u),
	})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, token, err := ac.authService.Login(c.Request.Context(), validator.NormalizeEmail(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to login"},
		)
		ac.logger.Error("Login() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        user.ToResponseUser(*u),
	})
}

func (ac *AuthController) MeHandler(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "not authenticated"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}
