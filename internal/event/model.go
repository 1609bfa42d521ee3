package event

import (
	"time"

	"gorm.io/datatypes"
)

// ============================
// 🔷 GORM Event Model

// Event statuses. Stored as a short varchar, not a database enum.
const (
	StatusDraft     = "draft"
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Event struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Description     *string        `gorm:"type:text" json:"description"`
	StartDate       time.Time      `gorm:"column:start_date;type:timestamptz;not null;index" json:"startDate"`
	EndDate         time.Time      `gorm:"column:end_date;type:timestamptz;not null" json:"endDate"`
	Location        string         `gorm:"type:varchar(500);not null" json:"location"`
	Category        *string        `gorm:"type:varchar(100)" json:"category"`
	SubCategory     *string        `gorm:"column:sub_category;type:varchar(100)" json:"subCategory"`
	Status          string         `gorm:"type:varchar(50);not null;default:draft;index" json:"status"`
	TicketsSold     int            `gorm:"column:tickets_sold;not null;default:0" json:"ticketsSold"`
	TotalRevenue    int            `gorm:"column:total_revenue;not null;default:0" json:"totalRevenue"`
	UniqueAttendees int            `gorm:"column:unique_attendees;not null;default:0" json:"uniqueAttendees"`
	ImageURL        *string        `gorm:"column:image_url;type:text" json:"imageUrl"`
	LogoURL         *string        `gorm:"column:logo_url;type:text" json:"logoUrl"`
	Policy          *string        `gorm:"type:varchar(255)" json:"policy"`
	Organizer       *string        `gorm:"type:varchar(255)" json:"organizer"`
	OrganizerLogo   *string        `gorm:"column:organizer_logo;type:text" json:"organizerLogo"`
	Teams           datatypes.JSON `gorm:"type:jsonb" json:"teams"`
	Tags            datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	Timezone        string         `gorm:"type:varchar(100);not null;default:GMT-6" json:"timezone"`
	// Written by the external Solana minting collaborator, never by this service.
	NFTMintAddress *string   `gorm:"column:nft_mint_address;type:varchar(255)" json:"nftMintAddress"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (Event) TableName() string {
	return "events"
}

// Team is one entry of the jsonb teams column.
type Team struct {
	Name string `json:"name" binding:"required"`
	Logo string `json:"logo,omitempty"`
}

// ============================
// 🟡 Create Event Request

type CreateEventRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=255"`
	Description     string   `json:"description"`
	StartDate       string   `json:"startDate" binding:"required,eventdate"`
	EndDate         string   `json:"endDate" binding:"required,eventdate"`
	Location        string   `json:"location" binding:"required,min=1,max=500"`
	Category        string   `json:"category" binding:"omitempty,max=100"`
	SubCategory     string   `json:"subCategory" binding:"omitempty,max=100"`
	Status          string   `json:"status" binding:"omitempty,oneof=draft upcoming ongoing completed cancelled"`
	TicketsSold     int      `json:"ticketsSold" binding:"min=0"`
	TotalRevenue    int      `json:"totalRevenue" binding:"min=0"`
	UniqueAttendees int      `json:"uniqueAttendees" binding:"min=0"`
	ImageURL        string   `json:"imageUrl" binding:"omitempty,url"`
	LogoURL         string   `json:"logoUrl" binding:"omitempty,url"`
	Policy          string   `json:"policy" binding:"omitempty,max=255"`
	Organizer       string   `json:"organizer" binding:"omitempty,max=255"`
	OrganizerLogo   string   `json:"organizerLogo"`
	Teams           []Team   `json:"teams" binding:"omitempty,dive"`
	Tags            []string `json:"tags"`
	Timezone        string   `json:"timezone" binding:"omitempty,max=100"`
}

// ============================
// 🟠 Update Event Request
//
// Every field is optional. A nil pointer means "leave unchanged"; an empty
// string on an optional text/URL field clears the stored value.

type UpdateEventRequest struct {
	Name            *string   `json:"name" binding:"omitnil,min=1,max=255"`
	Description     *string   `json:"description"`
	StartDate       *string   `json:"startDate" binding:"omitnil,eventdate"`
	EndDate         *string   `json:"endDate" binding:"omitnil,eventdate"`
	Location        *string   `json:"location" binding:"omitnil,min=1,max=500"`
	Category        *string   `json:"category" binding:"omitempty,max=100"`
	SubCategory     *string   `json:"subCategory" binding:"omitempty,max=100"`
	Status          *string   `json:"status" binding:"omitnil,oneof=draft upcoming ongoing completed cancelled"`
	TicketsSold     *int      `json:"ticketsSold" binding:"omitnil,min=0"`
	TotalRevenue    *int      `json:"totalRevenue" binding:"omitnil,min=0"`
	UniqueAttendees *int      `json:"uniqueAttendees" binding:"omitnil,min=0"`
	ImageURL        *string   `json:"imageUrl" binding:"omitempty,url"`
	LogoURL         *string   `json:"logoUrl" binding:"omitempty,url"`
	Policy          *string   `json:"policy" binding:"omitempty,max=255"`
	Organizer       *string   `json:"organizer" binding:"omitempty,max=255"`
	OrganizerLogo   *string   `json:"organizerLogo"`
	Teams           *[]Team   `json:"teams" binding:"omitnil,dive"`
	Tags            *[]string `json:"tags"`
	Timezone        *string   `json:"timezone" binding:"omitempty,max=100"`
}

// ============================
// 🔎 Listing

// Filters is the conjunction of optional predicates applied to the list
// query. Date bounds compare against the event's start_date: EndDate selects
// events that begin on or before it.
type Filters struct {
	Status    string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type ListResponse struct {
	Events     []Event    `json:"events"`
	Pagination Pagination `json:"pagination"`
}
