package mapping

import (
	"database/sql"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/daybook-app/daybook_backend/internal/models"
)

// ToDomainUser converts a user row to its domain representation.
func ToDomainUser(m models.User) domain.User {
	u := domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		DeletedAt: m.DeletedAt,
	}
	if m.GoogleSubject.Valid {
		sub := m.GoogleSubject.String
		u.GoogleSubject = &sub
	}
	if m.RefreshTokenHash.Valid {
		u.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		expiry := m.RefreshTokenExpiryTime.Time
		u.RefreshTokenExpiryTime = &expiry
	}
	return u
}

// ToModelUser converts a domain user to its row representation.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		DeletedAt:    d.DeletedAt,
	}
	if d.GoogleSubject != nil {
		m.GoogleSubject = sql.NullString{String: *d.GoogleSubject, Valid: true}
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}
