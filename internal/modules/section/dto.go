package section

type CreateSectionRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Position *int   `json:"position" binding:"omitempty,min=0"`
}

type UpdateSectionRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=200"`
	Position *int    `json:"position" binding:"omitempty,min=0"`
}
