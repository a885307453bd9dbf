package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/avanibrahim/dashnusa/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/profile", createProfileHandler)
	authGroup.GET("/profile", getProfileHandler)
	authGroup.POST("/entries", createEntryHandler)
	authGroup.GET("/entries", listEntriesHandler)
	authGroup.PUT("/entries/:id", updateEntryHandler)
	authGroup.DELETE("/entries/:id", deleteEntryHandler)
	authGroup.POST("/categories", createCategoryHandler)
	authGroup.GET("/categories", listCategoriesHandler)
	authGroup.PUT("/categories/:id", updateCategoryHandler)
	authGroup.DELETE("/categories/:id", deleteCategoryHandler)
	authGroup.POST("/loans", createLoanHandler)
	authGroup.GET("/loans", listLoansHandler)
	authGroup.PUT("/loans/:id", updateLoanHandler)
	authGroup.DELETE("/loans/:id", deleteLoanHandler)
	authGroup.GET("/loans/summary", loanSummaryHandler)
	authGroup.GET("/dashboard/summary", dashboardSummaryHandler)
	authGroup.GET("/dashboard/trend", dashboardTrendHandler)
	authGroup.GET("/dashboard/breakdown", dashboardBreakdownHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	username := usernameVal.(string)
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// getUserFromContext fetches the currently authenticated user using the username set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("username = ?", uname).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// isAdmin reports whether the request carries the administrator role.
func isAdmin(c *gin.Context) bool {
	role, _ := c.Get("role")
	return role == "administrator"
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := Register(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func createProfileHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Occupation string `json:"occupation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile := models.Profile{UserID: user.ID, Name: req.Name, Email: req.Email, Phone: req.Phone, Occupation: req.Occupation}
	if err := db.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": profile.ID})
}

func getProfileHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var p models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&p).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	// Generate JWT token. Resolve role name from RoleID (we only store role_id).
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// create refresh token
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	// generate random 32-byte token (hex)
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	// hash for storage
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// helper to find refresh token record by raw token string
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	// load user
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	// create access token
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}
