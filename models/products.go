package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type StandardConfigItem struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
	Image string `bson:"image" json:"image"`
}

type Product struct {
	Id          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Slug        string        `bson:"slug" json:"slug"`
	Category    string        `bson:"category,omitempty" json:"category,omitempty"`
	SortOrder   *int          `bson:"sortOrder,omitempty" json:"sortOrder,omitempty"`
	Description string        `bson:"description" json:"description"`
	FeatureTags []string      `bson:"featureTags,omitempty" json:"featureTags,omitempty"`
	ImageUrls   []string      `bson:"imageUrls" json:"imageUrls"`

	ShowStandardConfigs    bool                 `bson:"showStandardConfigs" json:"showStandardConfigs"`
	StandardConfigurations []StandardConfigItem `bson:"standardConfigurations,omitempty" json:"standardConfigurations,omitempty"`

	TabbedContent *TabbedContent `bson:"tabbedContent,omitempty" json:"tabbedContent,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
