package models

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/identity"
)

// AccountModel is the persistence model for the Account domain entity.
type AccountModel struct {
	BaseModel
	Email        string        `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(100);not null"`
	FirstName    string        `gorm:"type:varchar(100)"`
	LastName     string        `gorm:"type:varchar(100)"`
	Company      string        `gorm:"type:varchar(100)"`
	Position     string        `gorm:"type:varchar(100)"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'customer'"`
	Active       bool          `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *identity.Account {
	return &identity.Account{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Company:      m.Company,
		Position:     m.Position,
		Role:         m.Role,
		Active:       m.Active,
	}
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *identity.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Email = a.Email
	m.PasswordHash = a.PasswordHash
	m.FirstName = a.FirstName
	m.LastName = a.LastName
	m.Company = a.Company
	m.Position = a.Position
	m.Role = a.Role
	m.Active = a.Active
	return m
}

// ConfirmTokenModel is the persistence model for email confirmation tokens.
type ConfirmTokenModel struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(64);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ConfirmTokenModel) TableName() string {
	return "confirm_tokens"
}

// ToDomain converts the persistence model to a domain ConfirmToken.
func (m *ConfirmTokenModel) ToDomain() *identity.ConfirmToken {
	return &identity.ConfirmToken{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		Token:      m.Token,
	}
}

// ConfirmTokenModelFromDomain creates a new persistence model from a domain ConfirmToken.
func ConfirmTokenModelFromDomain(t *identity.ConfirmToken) *ConfirmTokenModel {
	m := &ConfirmTokenModel{}
	m.FromDomainBaseEntity(t.BaseEntity)
	m.AccountID = t.AccountID
	m.Token = t.Token
	return m
}
