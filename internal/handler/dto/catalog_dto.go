package dto

import (
	"github.com/yourusername/survey-api/internal/domain/entity"
)

// CreateProgrammeRequest is the body of POST /api/programmes
type CreateProgrammeRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=1000"`
}

// CreateClassRequest is the body of POST /api/classes
type CreateClassRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	ProgrammeID *uint  `json:"programmeId"`
}

// CreatePersonRequest is the body of POST /api/people
type CreatePersonRequest struct {
	Name     string      `json:"name" binding:"required,max=255"`
	Email    string      `json:"email" binding:"required,email"`
	Role     entity.Role `json:"role" binding:"required,oneof=ADMIN TEACHER STUDENT"`
	Password string      `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PersonResponse is a person without credentials
type PersonResponse struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
}

// NewPersonResponse builds the response
func NewPersonResponse(p *entity.Person) *PersonResponse {
	if p == nil {
		return nil
	}
	return &PersonResponse{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role}
}

// NewPersonListResponse builds responses for people
func NewPersonListResponse(people []entity.Person) []*PersonResponse {
	list := make([]*PersonResponse, len(people))
	for i := range people {
		list[i] = NewPersonResponse(&people[i])
	}
	return list
}
