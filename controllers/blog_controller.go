package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/auswindowshrouds/awsbackend/dto"
	"github.com/auswindowshrouds/awsbackend/models"
	"github.com/auswindowshrouds/awsbackend/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const excerptWords = 30

// GetBlogPosts (public)
// GET /blog-posts?page=1&limit=20
// Only published posts, newest first.
func GetBlogPosts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("blog_posts")

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 20)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 20
		}
		skip := int64((page - 1) * limit)

		filter := bson.M{"published": true}

		opts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "publishedAt", Value: -1}})

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.BlogPost, 0)
		for cursor.Next(ctx) {
			var post models.BlogPost
			if err := cursor.Decode(&post); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, post)
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

// GetBlogPostBySlug (public)
// GET /blog-posts/slug/:slug
func GetBlogPostBySlug(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("blog_posts")

		slug := strings.TrimSpace(c.Param("slug"))
		var post models.BlogPost
		if err := col.FindOne(ctx, bson.M{"slug": slug, "published": true}).Decode(&post); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

// AddBlogPost (admin)
// POST /admin/blog-posts
func AddBlogPost(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("blog_posts")

		var body dto.CreateBlogPostDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		body.Title = strings.TrimSpace(body.Title)
		excerpt := strings.TrimSpace(body.Excerpt)
		if excerpt == "" {
			excerpt = utils.GenerateExcerpt(body.Content, excerptWords)
		}

		now := time.Now().UTC()
		post := models.BlogPost{
			ID:               bson.NewObjectID(),
			Title:            body.Title,
			Slug:             utils.GenerateSlug(body.Title),
			Content:          body.Content,
			Excerpt:          excerpt,
			FeaturedImageUrl: strings.TrimSpace(body.FeaturedImageUrl),
			Published:        body.Published,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if body.Published {
			post.PublishedAt = &now
		}

		if _, err := col.InsertOne(ctx, post); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, post)
	}
}

// UpdateBlogPost (admin)
// PATCH /admin/blog-posts/:id
func UpdateBlogPost(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("blog_posts")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
			return
		}

		var body dto.UpdateBlogPostDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		set := bson.M{"updatedAt": now}
		unset := bson.M{}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			set["title"] = title
			set["slug"] = utils.GenerateSlug(title)
		}
		if body.Content != nil {
			set["content"] = *body.Content
			if body.Excerpt == nil {
				set["excerpt"] = utils.GenerateExcerpt(*body.Content, excerptWords)
			}
		}
		if body.Excerpt != nil {
			set["excerpt"] = strings.TrimSpace(*body.Excerpt)
		}
		if body.FeaturedImageUrl != nil {
			set["featuredImageUrl"] = strings.TrimSpace(*body.FeaturedImageUrl)
		}
		if body.Published != nil {
			set["published"] = *body.Published
			if *body.Published {
				set["publishedAt"] = now
			} else {
				unset["publishedAt"] = ""
			}
		}

		update := bson.M{"$set": set}
		if len(unset) > 0 {
			update["$unset"] = unset
		}

		res, err := col.UpdateByID(ctx, id, update)
		if err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DeleteBlogPost (admin)
// DELETE /admin/blog-posts/:id
func DeleteBlogPost(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("blog_posts")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
