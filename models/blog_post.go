package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type BlogPost struct {
	ID bson.ObjectID `bson:"_id,omitempty" json:"id"`

	Title   string `bson:"title" json:"title"`
	Slug    string `bson:"slug" json:"slug"`
	Content string `bson:"content" json:"content"`
	Excerpt string `bson:"excerpt,omitempty" json:"excerpt,omitempty"`

	FeaturedImageUrl string `bson:"featuredImageUrl,omitempty" json:"featuredImageUrl,omitempty"`

	Published   bool       `bson:"published" json:"published"`
	PublishedAt *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
