package controllers

import (
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/auswindowshrouds/awsbackend/dto"
	"github.com/auswindowshrouds/awsbackend/models"
	"github.com/auswindowshrouds/awsbackend/storage"
	"github.com/auswindowshrouds/awsbackend/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GetProducts (public)
// GET /products?category=...&page=1&limit=20
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("products")

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
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}

		// sortOrder first (nulls last by virtue of ascending), then name
		findOpts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}})

		cursor, err := col.Find(ctx, filter, findOpts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		for cursor.Next(ctx) {
			var p models.Product
			if err := cursor.Decode(&p); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			products = append(products, p)
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
			"items": products,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// GetProductBySlug (public)
// GET /products/slug/:slug
func GetProductBySlug(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("products")

		slug := strings.TrimSpace(c.Param("slug"))
		var p models.Product
		if err := col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusOK, p)
	}
}

// AddProduct (admin)
// POST /admin/products
// multipart/form-data:
//   - data: JSON string (CreateProductDTO)
//   - images: 1 to maxImages files
func AddProduct(db *mongo.Database, objects storage.ObjectStore, maxImages int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("products")

		dataStr := c.PostForm("data")
		if dataStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}

		var body dto.CreateProductDTO
		if err := json.Unmarshal([]byte(dataStr), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json", "details": err.Error()})
			return
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || strings.TrimSpace(body.Description) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and description are required"})
			return
		}
		if body.TabbedContent != nil {
			if err := body.TabbedContent.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tabbed content", "details": err.Error()})
				return
			}
		}

		slug := utils.GenerateSlug(body.Name)

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
			return
		}
		files := form.File["images"]
		if len(files) < 1 || len(files) > maxImages {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("images must be 1 to %d", maxImages)})
			return
		}

		imageUrls, keys, err := uploadImages(c, objects, slug, files)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		product := models.Product{
			Id:                     bson.NewObjectID(),
			Name:                   body.Name,
			Slug:                   slug,
			Category:               strings.TrimSpace(body.Category),
			SortOrder:              body.SortOrder,
			Description:            body.Description,
			FeatureTags:            body.FeatureTags,
			ImageUrls:              imageUrls,
			ShowStandardConfigs:    body.ShowStandardConfigs,
			StandardConfigurations: body.StandardConfigurations,
			TabbedContent:          body.TabbedContent,
			CreatedAt:              now,
			UpdatedAt:              now,
		}

		if _, err := col.InsertOne(ctx, product); err != nil {
			_ = objects.Delete(ctx, keys)
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct (admin)
// PATCH /admin/products/:id
// multipart/form-data: data JSON (UpdateProductDTO) + optional new images.
func UpdateProduct(db *mongo.Database, objects storage.ObjectStore, maxImages int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("products")

		prodID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		dataStr := c.PostForm("data")
		if dataStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}

		var body dto.UpdateProductDTO
		if err := json.Unmarshal([]byte(dataStr), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json", "details": err.Error()})
			return
		}
		if body.TabbedContent != nil {
			if err := body.TabbedContent.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tabbed content", "details": err.Error()})
				return
			}
		}

		var product models.Product
		if err := col.FindOne(ctx, bson.M{"_id": prodID}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		// only urls that actually belong to the product may be removed
		imagesToDelete := utils.IntersectStrings(body.RemovedImagesUrls, product.ImageUrls)

		var newFiles []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil && form != nil {
			newFiles = form.File["images"]
		}

		totalImageCount := len(product.ImageUrls) - len(imagesToDelete) + len(newFiles)
		if totalImageCount > maxImages {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("max %d images", maxImages)})
			return
		}
		if totalImageCount < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product needs at least one image"})
			return
		}

		var newUrls []string
		var newKeys []string
		if len(newFiles) > 0 {
			newUrls, newKeys, err = uploadImages(c, objects, product.Slug, newFiles)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		set := bson.M{"updatedAt": time.Now().UTC()}
		if body.Name != nil {
			set["name"] = strings.TrimSpace(*body.Name)
			set["slug"] = utils.GenerateSlug(*body.Name)
		}
		if body.Category != nil {
			set["category"] = strings.TrimSpace(*body.Category)
		}
		if body.SortOrder != nil {
			set["sortOrder"] = *body.SortOrder
		}
		if body.Description != nil {
			set["description"] = *body.Description
		}
		if body.FeatureTags != nil {
			set["featureTags"] = *body.FeatureTags
		}
		if body.ShowStandardConfigs != nil {
			set["showStandardConfigs"] = *body.ShowStandardConfigs
		}
		if body.StandardConfigurations != nil {
			set["standardConfigurations"] = *body.StandardConfigurations
		}
		if body.TabbedContent != nil {
			set["tabbedContent"] = body.TabbedContent
		}
		if len(imagesToDelete) > 0 || len(newUrls) > 0 {
			set["imageUrls"] = utils.MergeImageUrls(product.ImageUrls, imagesToDelete, newUrls)
		}

		if _, err := col.UpdateByID(ctx, prodID, bson.M{"$set": set}); err != nil {
			// roll the new uploads back, keep the old objects
			if len(newKeys) > 0 {
				_ = objects.Delete(ctx, newKeys)
			}
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed", "details": err.Error()})
			return
		}

		// db update succeeded: now drop the replaced objects, best effort
		deleteObjectsByURL(c, objects, imagesToDelete)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DeleteProduct (admin)
// DELETE /admin/products/:id
func DeleteProduct(db *mongo.Database, objects storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("products")

		prodID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var product models.Product
		if err := col.FindOne(ctx, bson.M{"_id": prodID}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		if _, err := col.DeleteOne(ctx, bson.M{"_id": prodID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		deleteObjectsByURL(c, objects, product.ImageUrls)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// uploadImages stores each product image and returns public urls plus the
// object keys (for rollback if the DB write fails).
func uploadImages(c *gin.Context, objects storage.ObjectStore, slug string, files []*multipart.FileHeader) ([]string, []string, error) {
	ctx := c.Request.Context()

	urls := make([]string, 0, len(files))
	keys := make([]string, 0, len(files))

	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = mime.TypeByExtension(ext)
		}
		if ct == "" {
			ct = "application/octet-stream"
		}

		f, err := fh.Open()
		if err != nil {
			_ = objects.Delete(ctx, keys)
			return nil, nil, fmt.Errorf("open file: %w", err)
		}

		key := storage.ObjectKey("products/"+slug, fh.Filename)
		_, err = objects.Upload(ctx, key, f, ct)
		_ = f.Close()
		if err != nil {
			_ = objects.Delete(ctx, keys)
			return nil, nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
		}

		keys = append(keys, key)
		urls = append(urls, objects.PublicURL(key))
	}

	return urls, keys, nil
}

func deleteObjectsByURL(c *gin.Context, objects storage.ObjectStore, urls []string) {
	if len(urls) == 0 {
		return
	}
	keys := make([]string, 0, len(urls))
	for _, u := range urls {
		if key, err := objects.KeyFromURL(u); err == nil {
			keys = append(keys, key)
		}
	}
	_ = objects.Delete(c.Request.Context(), keys)
}
