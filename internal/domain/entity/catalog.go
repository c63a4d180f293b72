package entity

import (
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role of a person in the system.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleTeacher || r == RoleStudent
}

// IsStaff reports whether r may manage questionnaires and the catalogue.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// Programme is an educational programme questionnaires can be tagged with.
type Programme struct {
	Base
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"size:1000;not null;default:''" json:"description"`
}

// TableName returns the GORM table name
func (Programme) TableName() string {
	return "programmes"
}

// Class is a group of people, optionally belonging to a programme.
type Class struct {
	Base
	Name        string `gorm:"size:255;not null" json:"name"`
	ProgrammeID *uint  `gorm:"index" json:"programme_id,omitempty"`
}

// TableName returns the GORM table name
func (Class) TableName() string {
	return "classes"
}

// Person is a staff member or respondent.
type Person struct {
	Base
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Role         Role   `gorm:"size:16;not null;default:'STUDENT'" json:"role"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

// TableName returns the GORM table name
func (Person) TableName() string {
	return "people"
}

// SetPassword stores plain in PasswordHash; BeforeSave hashes it.
func (p *Person) SetPassword(plain string) {
	p.PasswordHash = plain
}

// BeforeSave hashes PasswordHash unless it already holds a bcrypt hash.
func (p *Person) BeforeSave(tx *gorm.DB) error {
	if p.PasswordHash == "" || isBcryptHash(p.PasswordHash) {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(p.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Person.BeforeSave] failed to hash password for email=%s: %v", p.Email, err)
		return err
	}
	p.PasswordHash = string(hashed)
	return nil
}

// CheckPassword compares password against the stored hash.
func (p *Person) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// ClassPerson enrolls a person in a class.
type ClassPerson struct {
	Base
	ClassID  uint `gorm:"not null;index" json:"class_id"`
	PersonID uint `gorm:"not null;index" json:"person_id"`
}

// TableName returns the GORM table name
func (ClassPerson) TableName() string {
	return "class_people"
}

// ProgrammeQuestionnaire tags a questionnaire with a programme.
type ProgrammeQuestionnaire struct {
	Base
	ProgrammeID     uint `gorm:"not null;index" json:"programme_id"`
	QuestionnaireID uint `gorm:"not null;index" json:"questionnaire_id"`
}

// TableName returns the GORM table name
func (ProgrammeQuestionnaire) TableName() string {
	return "programme_questionnaires"
}

// ClassQuestionnaire tags a questionnaire with a class.
type ClassQuestionnaire struct {
	Base
	ClassID         uint `gorm:"not null;index" json:"class_id"`
	QuestionnaireID uint `gorm:"not null;index" json:"questionnaire_id"`
}

// TableName returns the GORM table name
func (ClassQuestionnaire) TableName() string {
	return "class_questionnaires"
}
