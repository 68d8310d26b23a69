package dto

import "github.com/auswindowshrouds/awsbackend/models"

type CreateProductDTO struct {
	Name        string   `json:"name" binding:"required,min=3"`
	Category    string   `json:"category"`
	SortOrder   *int     `json:"sortOrder,omitempty"`
	Description string   `json:"description" binding:"required"`
	FeatureTags []string `json:"featureTags"`

	ShowStandardConfigs    bool                        `json:"showStandardConfigs"`
	StandardConfigurations []models.StandardConfigItem `json:"standardConfigurations"`

	TabbedContent *models.TabbedContent `json:"tabbedContent,omitempty"`
}

type UpdateProductDTO struct {
	Name        *string   `json:"name,omitempty"`
	Category    *string   `json:"category,omitempty"`
	SortOrder   *int      `json:"sortOrder,omitempty"`
	Description *string   `json:"description,omitempty"`
	FeatureTags *[]string `json:"featureTags,omitempty"`

	ShowStandardConfigs    *bool                        `json:"showStandardConfigs,omitempty"`
	StandardConfigurations *[]models.StandardConfigItem `json:"standardConfigurations,omitempty"`

	TabbedContent *models.TabbedContent `json:"tabbedContent,omitempty"`

	RemovedImagesUrls []string `json:"removedImagesUrls,omitempty"`
}
