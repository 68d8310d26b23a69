package dto

type CreateBlogPostDTO struct {
	Title            string `json:"title" binding:"required"`
	Content          string `json:"content" binding:"required"`
	Excerpt          string `json:"excerpt"`
	FeaturedImageUrl string `json:"featuredImageUrl"`
	Published        bool   `json:"published"`
}

type UpdateBlogPostDTO struct {
	Title            *string `json:"title,omitempty"`
	Content          *string `json:"content,omitempty"`
	Excerpt          *string `json:"excerpt,omitempty"`
	FeaturedImageUrl *string `json:"featuredImageUrl,omitempty"`
	Published        *bool   `json:"published,omitempty"`
}
