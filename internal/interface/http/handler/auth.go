package handler

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/osantanna/livraria-pos/internal/application/auth"
	"github.com/osantanna/livraria-pos/internal/interface/http/dto"
	"github.com/osantanna/livraria-pos/internal/interface/http/middleware"
	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
	"github.com/osantanna/livraria-pos/pkg/response"
)

// AuthHandler serves the admin login flow and the courtesy password check.
type AuthHandler struct {
	login          *appauth.LoginUseCase
	logout         *appauth.LogoutUseCase
	verifyCourtesy *appauth.VerifyCourtesyUseCase
}

func NewAuthHandler(
	login *appauth.LoginUseCase,
	logout *appauth.LogoutUseCase,
	verifyCourtesy *appauth.VerifyCourtesyUseCase,
) *AuthHandler {
	return &AuthHandler{
		login:          login,
		logout:         logout,
		verifyCourtesy: verifyCourtesy,
	}
}

// Login autentica o administrador
// @Summary      Login de administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Senha de administrador"
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Parâmetros inválidos: "+err.Error())
		return
	}

	result, err := h.login.Execute(c.Request.Context(), req.Password, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Logout revoga o token atual
// @Summary      Logout de administrador
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetAccessToken(c)
	if token == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.logout.Execute(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// VerifyCourtesy confere a senha de cortesia antes de uma venda com total zero
// @Summary      Verificar senha de cortesia
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.VerifyCourtesyRequest true "Senha de cortesia"
// @Success      200 {object} response.Response
// @Router       /api/v1/auth/verify-cortesia [post]
func (h *AuthHandler) VerifyCourtesy(c *gin.Context) {
	var req dto.VerifyCourtesyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Parâmetros inválidos: "+err.Error())
		return
	}

	if err := h.verifyCourtesy.Execute(c.Request.Context(), req.Password); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"autorizado": true})
}
