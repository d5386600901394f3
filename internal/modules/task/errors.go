package task

import "errors"

var (
	ErrAssigneeNotMember   = errors.New("assignee is not a member of the organization")
	ErrSectionNotInProject = errors.New("section does not belong to the project")
)
