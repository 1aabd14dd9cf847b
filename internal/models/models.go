package models

import (
	"encoding/gob"
	"time"
)

func init() {
	// Flash values travel inside the gob-encoded session cookie.
	gob.Register(Flash{})
}

type Flash struct {
	Category string
	Message  string
}

type Panchayath struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	District string `json:"district"`
	State    string `json:"state"`
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Issue struct {
	ID           int       `json:"id"`
	PanchayathID int       `json:"panchayath_id"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	PhotoPath    *string   `json:"photo_path,omitempty"`
	Status       string    `json:"status"`
	UserID       *int      `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined columns, filled by list queries only.
	PanchayathName string  `json:"panchayath_name,omitempty"`
	ReporterName   *string `json:"reporter_name,omitempty"`
}

type Notice struct {
	ID           int       `json:"id"`
	PanchayathID int       `json:"panchayath_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	BannerPath   *string   `json:"banner_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	PanchayathName string `json:"panchayath_name,omitempty"`
}

type Admin struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	PanchayathID int    `json:"panchayath_id"`
}

// Stats is the aggregate block shown on the home page.
type Stats struct {
	TotalPanchayaths int `json:"total_panchayaths"`
	TotalIssues      int `json:"total_issues"`
	ResolvedIssues   int `json:"resolved_issues"`
	ResolutionRate   int `json:"resolution_rate"`
	TotalCitizens    int `json:"total_citizens"`
}

type RegisterForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Mobile   string `validate:"required,min=10,max=15"`
	Password string `validate:"required,min=8"`
}

type ReportForm struct {
	PanchayathID int    `validate:"required,gt=0"`
	Category     string `validate:"required"`
	Description  string `validate:"required"`
	Location     string `validate:"required"`
}

type NoticeForm struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
}
