package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	InProgress IssueStatus = "In Progress"
	Resolved   IssueStatus = "Resolved"
	Closed     IssueStatus = "Closed"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []IssueStatus{Pending, InProgress, Resolved, Closed}

// ParseStatus accepts human-friendly spellings ("pending", "in progress",
// "IN_PROGRESS", "in-progress") and returns the canonical status.
func ParseStatus(raw string) (IssueStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	key = strings.Join(strings.Fields(key), " ")

	switch key {
	case "pending":
		return Pending, true
	case "in progress", "inprogress":
		return InProgress, true
	case "resolved":
		return Resolved, true
	case "closed":
		return Closed, true
	}
	return "", false
}

// IssuePriority enum
type IssuePriority string

const (
	Low      IssuePriority = "Low"
	Medium   IssuePriority = "Medium"
	High     IssuePriority = "High"
	Critical IssuePriority = "Critical"
)

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a point from a latitude/longitude pair.
func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

func (p *GeoPoint) Longitude() float64 { return p.Coordinates[0] }
func (p *GeoPoint) Latitude() float64  { return p.Coordinates[1] }

// ImageData is the embedded binary form of an attached image. Older records
// carry it; new uploads are stored on disk and referenced by ImagePath.
type ImageData struct {
	Data        []byte `bson:"data" json:"-"`
	ContentType string `bson:"contentType" json:"contentType"`
}

// Issue represents a civic issue reported by a user
type Issue struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title            string              `bson:"title" json:"title"`
	Description      string              `bson:"description" json:"description"`
	Location         string              `bson:"location,omitempty" json:"location,omitempty"`
	Geo              *GeoPoint           `bson:"geo,omitempty" json:"geo,omitempty"`
	Category         string              `bson:"category" json:"category"`
	Department       string              `bson:"department" json:"department"`
	Status           IssueStatus         `bson:"status" json:"status"`
	Priority         IssuePriority       `bson:"priority" json:"priority"`
	ReportedBy       primitive.ObjectID  `bson:"reportedBy" json:"reportedBy"`
	AssignedTo       *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Notes            string              `bson:"notes" json:"notes"`
	ImagePath        string              `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	ImageContentType string              `bson:"imageContentType,omitempty" json:"imageContentType,omitempty"`
	ImageData        *ImageData          `bson:"imageData,omitempty" json:"-"`
	Tags             []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// HasImage reports whether either image representation is present.
func (i *Issue) HasImage() bool {
	return i.ImagePath != "" || (i.ImageData != nil && len(i.ImageData.Data) > 0)
}

// IssueFilter narrows issue listings. Empty fields match everything.
type IssueFilter struct {
	Status   IssueStatus
	Category string
	// Search matches title or description, case-insensitively.
	Search string
	// Oldest sorts ascending by creation time instead of newest first.
	Oldest bool
}

// ReporterInfo is the public part of the reporting user.
type ReporterInfo struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// IssueView is an issue as returned by listings, with its vote tally.
type IssueView struct {
	Issue
	Reporter     *ReporterInfo `json:"reporter,omitempty"`
	Votes        int64         `json:"votes"`
	UserHasVoted bool          `json:"userHasVoted"`
}

// IssuePage is one page of an issue listing.
type IssuePage struct {
	Issues      []IssueView `json:"issues"`
	Total       int64       `json:"total"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}
