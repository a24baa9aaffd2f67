package model

import (
	"encoding/json"
	"time"
)

const DefaultLabel = "default"

type Token struct {
	ID        int64
	Label     string
	Sealed    string
	CreatedAt time.Time
}

type SaveRequest struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

type UpdateRequest struct {
	ID     int64  `json:"id"`
	NewBio string `json:"newBio"`
}

type DeleteRequest struct {
	ID int64 `json:"id"`
}

// ServiceResponse is the envelope shared by every /api endpoint.
type ServiceResponse struct {
	OK       bool            `json:"ok"`
	ID       *int64          `json:"id,omitempty"`
	Error    string          `json:"error,omitempty"`
	Deleted  *int64          `json:"deleted,omitempty"`
	Upstream json.RawMessage `json:"upstream,omitempty"`
	Detail   json.RawMessage `json:"detail,omitempty"`
}

type PageData struct {
	DefaultLabel string
}

const (
	SaveTokenPath   = "/api/save-token"
	UpdateBioPath   = "/api/update-bio"
	DeleteTokenPath = "/api/delete-token"
)
