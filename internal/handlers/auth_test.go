package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"delulu-backend/internal/auth"
	"delulu-backend/internal/models"
	"delulu-backend/internal/services"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.InitJWT("test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	authHandler := NewAuthHandler(services.NewUserService(db))

	router := gin.New()
	router.POST("/auth/wallet", authHandler.WalletLogin)
	protected := router.Group("/auth")
	protected.Use(auth.AuthMiddleware())
	protected.GET("/me", authHandler.GetMe)

	return router
}

func getMe(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWalletLoginIssuesUsableToken(t *testing.T) {
	router := setupAuthRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/wallet", gin.H{
		"wallet_address": stakerAddr,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID            uint   `json:"id"`
			WalletAddress string `json:"wallet_address"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, stakerAddr, resp.User.WalletAddress)

	// Logging in again returns the same user, not a second row.
	rec = doJSON(t, router, http.MethodPost, "/auth/wallet", gin.H{
		"wallet_address": stakerAddr,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	me := getMe(router, "Bearer "+resp.Token)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
	assert.Contains(t, me.Body.String(), stakerAddr)
}

func TestWalletLoginRejectsMalformedAddress(t *testing.T) {
	router := setupAuthRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/wallet", gin.H{
		"wallet_address": "not-an-address",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestAuthMeRejectsBadTokens(t *testing.T) {
	router := setupAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized, getMe(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, getMe(router, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, getMe(router, "Bearer not.a.token").Code)

	// A token signed under a rotated secret is rejected.
	auth.InitJWT("old-secret")
	stale, err := auth.GenerateToken(1, stakerAddr)
	require.NoError(t, err)
	auth.InitJWT("test-secret")
	assert.Equal(t, http.StatusUnauthorized, getMe(router, "Bearer "+stale).Code)
}
