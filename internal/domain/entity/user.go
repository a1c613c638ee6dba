package entity

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMover  Role = "mover"
	RoleClient Role = "client"
)

// Redirect is the landing page for a resolved role.
func (r Role) Redirect() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleMover:
		return "/mover"
	case RoleClient:
		return "/dashboardclient"
	default:
		return "/login"
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMover || r == RoleClient
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	return s == VerificationPending || s == VerificationApproved || s == VerificationRejected
}

const (
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
)

// ClientProfile lives at users/{uid}/clients/{uid}.
type ClientProfile struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Phone     string    `json:"phone" firestore:"number"`
	Email     string    `json:"email" firestore:"email"`
	PhotoURL  string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at,omitempty" firestore:"updatedAt,omitempty"`
}

// MoverProfile lives at users/{uid}/movers/{uid}.
type MoverProfile struct {
	ID            string   `json:"id" firestore:"-"`
	CompanyName   string   `json:"company_name" firestore:"companyName"`
	Name          string   `json:"name" firestore:"name"`
	ServiceArea   string   `json:"service_area" firestore:"serviceArea"`
	ContactNumber string   `json:"contact_number" firestore:"contactNumber"`
	Email         string   `json:"email" firestore:"email"`
	Credentials   []string `json:"credentials" firestore:"credentials"`
	PhotoURL      string   `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`

	// IsAvailable is canonical. Status mirrors it for records written by
	// older clients that only know the string form.
	IsAvailable bool   `json:"is_available" firestore:"isAvailable"`
	Status      string `json:"status" firestore:"status"`

	VerificationStatus VerificationStatus `json:"verification_status" firestore:"verificationStatus"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty" firestore:"verifiedAt,omitempty"`
	VerifiedBy         string             `json:"verified_by,omitempty" firestore:"verifiedBy,omitempty"`
	AdminNotes         string             `json:"admin_notes,omitempty" firestore:"adminNotes,omitempty"`
	NotesUpdatedAt     *time.Time         `json:"notes_updated_at,omitempty" firestore:"notesUpdatedAt,omitempty"`
	NotesUpdatedBy     string             `json:"notes_updated_by,omitempty" firestore:"notesUpdatedBy,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at,omitempty" firestore:"updatedAt,omitempty"`
}

// DisplayName prefers the display name and falls back to the company name.
func (m *MoverProfile) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.CompanyName
}

func (m *MoverProfile) SetAvailable(available bool) {
	m.IsAvailable = available
	if available {
		m.Status = AvailabilityAvailable
	} else {
		m.Status = AvailabilityUnavailable
	}
}

func (m *MoverProfile) CanQuote() bool {
	return m.VerificationStatus == VerificationApproved
}

// Verification returns the mover's review state. Movers created before
// verification existed have no status and count as pending.
func (m *MoverProfile) Verification() VerificationStatus {
	if m.VerificationStatus == "" {
		return VerificationPending
	}
	return m.VerificationStatus
}
