package org

import "taskboard/internal/domain"

type CreateOrgRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
	Slug string `json:"slug" binding:"required,min=2,max=64,lowercase"`
}

type MemberPublic struct {
	UserID    int64             `json:"userId"`
	Email     string            `json:"email"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Role      domain.MemberRole `json:"role"`
}

type OrgDetails struct {
	Organization *domain.Organization `json:"organization"`
	Members      []MemberPublic       `json:"members"`
}
