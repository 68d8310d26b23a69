package controllers

import (
	"net/http"
	"time"

	"github.com/auswindowshrouds/awsbackend/config"
	"github.com/auswindowshrouds/awsbackend/dto"
	"github.com/auswindowshrouds/awsbackend/models"
	"github.com/auswindowshrouds/awsbackend/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func accessTTL(auth config.AuthConfig) time.Duration {
	return time.Duration(auth.AccessTokenTTLMinutes) * time.Minute
}

func refreshTTL(auth config.AuthConfig) time.Duration {
	return time.Duration(auth.RefreshTokenTTLDays) * 24 * time.Hour
}

func setRefreshCookie(c *gin.Context, auth config.AuthConfig, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "refreshToken",
		Value:    token,
		Path:     "/auth",
		Domain:   auth.CookieDomain,
		MaxAge:   int(refreshTTL(auth).Seconds()),
		HttpOnly: true,
		Secure:   auth.CookieSecure,
		SameSite: http.SameSiteNoneMode, // for cross-site
	})
}

// POST /auth/login
func Login(db *mongo.Database, auth config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		usersCol := db.Collection("users")
		if err := usersCol.FindOne(ctx, bson.M{"email": body.Email}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		accessToken, err := utils.GenerateAccessToken(auth.JWTSecret, user.ID.Hex(), user.Email, string(user.Role), accessTTL(auth))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(auth.JWTRefreshSecret, user.ID.Hex(), refreshTTL(auth))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate refresh token"})
			return
		}

		now := time.Now().UTC()
		refreshCol := db.Collection("refresh_tokens")
		_, err = refreshCol.InsertOne(ctx, models.RefreshToken{
			UserID:    user.ID,
			TokenHash: refreshToken,
			ExpiresAt: now.Add(refreshTTL(auth)),
			CreatedAt: now,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store refresh token"})
			return
		}

		setRefreshCookie(c, auth, refreshToken)
		c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
	}
}

// POST /auth/refresh
func Refresh(db *mongo.Database, auth config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCol := db.Collection("users")
		refreshCol := db.Collection("refresh_tokens")

		hash, err := c.Cookie("refreshToken")
		if err != nil || hash == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
			return
		}

		var rt models.RefreshToken
		err = refreshCol.FindOne(ctx, bson.M{
			"tokenHash": hash,
			"revokedAt": bson.M{"$exists": false},
			"expiresAt": bson.M{"$gt": time.Now().UTC()},
		}).Decode(&rt)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		var user models.User
		if err := usersCol.FindOne(ctx, bson.M{"_id": rt.UserID}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		// Rotate refresh token
		newHash, err := utils.GenerateRefreshToken(auth.JWTRefreshSecret, user.ID.Hex(), refreshTTL(auth))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
			return
		}

		now := time.Now().UTC()

		_, err = refreshCol.UpdateByID(ctx, rt.ID, bson.M{
			"$set": bson.M{
				"revokedAt":  now,
				"replacedBy": newHash,
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke refresh token"})
			return
		}

		_, err = refreshCol.InsertOne(ctx, models.RefreshToken{
			UserID:    user.ID,
			TokenHash: newHash,
			ExpiresAt: now.Add(refreshTTL(auth)),
			CreatedAt: now,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store refresh token"})
			return
		}

		accessToken, err := utils.GenerateAccessToken(auth.JWTSecret, user.ID.Hex(), user.Email, string(user.Role), accessTTL(auth))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
			return
		}

		setRefreshCookie(c, auth, newHash)
		c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
	}
}

// POST /auth/logout
func Logout(db *mongo.Database, auth config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		refreshCol := db.Collection("refresh_tokens")

		hash, _ := c.Cookie("refreshToken")
		utils.ClearRefreshCookie(c, auth.CookieDomain, auth.CookieSecure)

		// best effort revoke
		if hash != "" {
			now := time.Now().UTC()
			_, _ = refreshCol.UpdateOne(ctx, bson.M{
				"tokenHash": hash,
				"revokedAt": bson.M{"$exists": false},
			}, bson.M{
				"$set": bson.M{"revokedAt": now},
			})
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func RevokeAllRefreshTokens(c *gin.Context, db *mongo.Database, userID bson.ObjectID) error {
	refreshCol := db.Collection("refresh_tokens")
	now := time.Now().UTC()
	_, err := refreshCol.UpdateMany(c.Request.Context(), bson.M{
		"userId":    userID,
		"revokedAt": bson.M{"$exists": false},
	}, bson.M{
		"$set": bson.M{"revokedAt": now},
	})
	return err
}
