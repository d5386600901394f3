package domain

import "time"

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

type Task struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	ProjectID   int64        `json:"projectId" gorm:"index;not null"`
	SectionID   int64        `json:"sectionId" gorm:"index;not null"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status" gorm:"size:16;not null;default:'todo'"`
	Priority    TaskPriority `json:"priority" gorm:"size:16;not null;default:'medium'"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	AssigneeID  *int64       `json:"assigneeId,omitempty" gorm:"index"`
	Position    int          `json:"position" gorm:"not null;default:0"`

	Project  Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Section  Section `json:"-" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
	Assignee *User   `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
