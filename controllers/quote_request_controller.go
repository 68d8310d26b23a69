package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/auswindowshrouds/awsbackend/dto"
	"github.com/auswindowshrouds/awsbackend/models"
	"github.com/auswindowshrouds/awsbackend/quotes"
	"github.com/auswindowshrouds/awsbackend/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CreateQuoteRequest (public, no auth)
// POST /quote-requests
// multipart/form-data:
//   - data: JSON string (CreateQuoteRequestDTO)
//   - attachments: zero or more files (images, PDFs, text, .dwg/.dxf)
func CreateQuoteRequest(pipeline *quotes.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		dataStr := c.PostForm("data")
		if dataStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data field"})
			return
		}

		var body dto.CreateQuoteRequestDTO
		if err := json.Unmarshal([]byte(dataStr), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json", "details": err.Error()})
			return
		}

		var files []quotes.File
		if form, err := c.MultipartForm(); err == nil && form != nil {
			for _, fh := range form.File["attachments"] {
				files = append(files, quotes.FromMultipart(fh))
			}
		}

		result, err := pipeline.Submit(ctx, body, files)
		if err != nil {
			var vErr *quotes.ValidationError
			var upErr *quotes.UploadFailedError
			switch {
			case errors.As(err, &vErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
			case errors.As(err, &upErr):
				c.JSON(http.StatusBadGateway, gin.H{"error": upErr.Error(), "filename": upErr.Filename})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":             result.ID,
			"attachmentUrls": result.AttachmentUrls,
			"rejectedFiles":  result.RejectedFiles,
			"message":        "Your quote request has been submitted. We will get back to you within 24 hours.",
		})
	}
}

// GetReferralSources (public)
// GET /referral-sources
func GetReferralSources() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": models.ReferralSources})
	}
}

// GetQuoteRequests (admin)
// GET /admin/quote-requests?page=1&limit=20&email=a@b.com&q=...
func GetQuoteRequests(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("quote_requests")

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 20)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 20
		}
		skip := int64((page - 1) * limit)

		filter := bson.M{}
		if email := strings.TrimSpace(c.Query("email")); email != "" {
			filter["email"] = email
		}
		if source := strings.TrimSpace(c.Query("source")); source != "" {
			filter["howHeardAboutUs"] = source
		}

		opts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.QuoteRequest, 0)
		for cursor.Next(ctx) {
			var qr models.QuoteRequest
			if err := cursor.Decode(&qr); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, qr)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// GetQuoteRequest (admin)
// GET /admin/quote-requests/:id
func GetQuoteRequest(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("quote_requests")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote request id"})
			return
		}

		var qr models.QuoteRequest
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&qr); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote request not found"})
			return
		}

		c.JSON(http.StatusOK, qr)
	}
}
