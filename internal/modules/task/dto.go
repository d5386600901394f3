package task

import "time"

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=300"`
	Description string     `json:"description" binding:"max=5000"`
	SectionID   int64      `json:"sectionId" binding:"required"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *int64     `json:"assigneeId"`
	Position    *int       `json:"position" binding:"omitempty,min=0"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=300"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	SectionID   *int64     `json:"sectionId"`
	Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *int64     `json:"assigneeId"`
	Position    *int       `json:"position" binding:"omitempty,min=0"`
}
