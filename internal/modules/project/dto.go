package project

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
}
