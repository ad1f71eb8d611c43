package db

import (
	"github.com/uptrace/bun"
	"time"
)

type UnitModel struct {
	bun.BaseModel   `bun:"table:units,alias:u"`
	UnitId          string    `bun:"unit_id,pk"`
	Title           string    `bun:"title,notnull"`
	PropertyType    string    `bun:"property_type,notnull"`
	Location        string    `bun:"location,notnull"`
	Rooms           int       `bun:"rooms,notnull"`
	Description     string    `bun:"description,notnull"`
	YoutubeUrl      string    `bun:"youtube_url,notnull"`
	CoverImageUrl   string    `bun:"cover_image_url,notnull"`
	PhotoUrlsJson   string    `bun:"photo_urls_json,notnull"`
	ContactWhatsapp string    `bun:"contact_whatsapp,notnull"`
	ContactPhone    string    `bun:"contact_phone,notnull"`
	AvailableFrom   string    `bun:"available_from,notnull"`
	AvailableTo     string    `bun:"available_to,notnull"`
	PriceDay        string    `bun:"price_day,notnull"`
	PriceWeek       string    `bun:"price_week,notnull"`
	IsActive        bool      `bun:"is_active,notnull"`
	IsBooked        bool      `bun:"is_booked,notnull"`
	BookedFrom      string    `bun:"booked_from,notnull"`
	BookedTo        string    `bun:"booked_to,notnull"`
	BookingNoteText string    `bun:"booking_note_text,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull"`
	UpdatedAt       time.Time `bun:"updated_at,notnull"`
}

type LeadModel struct {
	bun.BaseModel  `bun:"table:leads,alias:l"`
	LeadId         string    `bun:"lead_id,pk"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
	UnitId         string    `bun:"unit_id,notnull"`
	Action         string    `bun:"action,notnull"`
	DurationText   string    `bun:"duration_text,notnull"`
	Note           string    `bun:"note,notnull"`
	GuestName      string    `bun:"guest_name,notnull"`
	GuestPhone     string    `bun:"guest_phone,notnull"`
	GuestResidence string    `bun:"guest_residence,notnull"`
	MetaJson       string    `bun:"meta_json,notnull"`
}

type BookingModel struct {
	bun.BaseModel     `bun:"table:bookings,alias:b"`
	BookingId         string     `bun:"booking_id,pk"`
	CreatedAt         time.Time  `bun:"created_at,notnull"`
	UnitId            string     `bun:"unit_id,notnull"`
	GuestName         string     `bun:"guest_name,notnull"`
	GuestPhone        string     `bun:"guest_phone,notnull"`
	GuestResidence    string     `bun:"guest_residence,notnull"`
	DurationText      string     `bun:"duration_text,notnull"`
	Note              string     `bun:"note,notnull"`
	Status            string     `bun:"status,notnull"`
	IsNewAdmin        bool       `bun:"is_new_admin,notnull"`
	BookedFrom        string     `bun:"booked_from,notnull"`
	BookedTo          string     `bun:"booked_to,notnull"`
	AdminScheduleText string     `bun:"admin_schedule_text,notnull"`
	ReviewedAt        *time.Time `bun:"reviewed_at"`
}

type SponsorMediaModel struct {
	bun.BaseModel `bun:"table:sponsor_media,alias:sm"`
	MediaId       string    `bun:"media_id,pk"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	Slot          string    `bun:"slot,notnull"`
	MediaKind     string    `bun:"media_kind,notnull"`
	Title         string    `bun:"title,notnull"`
	Url           string    `bun:"url,notnull"`
	IsActive      bool      `bun:"is_active,notnull"`
	SortOrder     int       `bun:"sort_order,notnull"`
}

type GuideCategoryModel struct {
	bun.BaseModel `bun:"table:guide_categories,alias:gc"`
	CategoryId    string    `bun:"category_id,pk"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	Name          string    `bun:"name,notnull"`
	IsActive      bool      `bun:"is_active,notnull"`
	SortOrder     int       `bun:"sort_order,notnull"`
}

type GuideItemModel struct {
	bun.BaseModel `bun:"table:guide_items,alias:gi"`
	ItemId        string    `bun:"item_id,pk"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	CategoryId    string    `bun:"category_id,notnull"`
	Name          string    `bun:"name,notnull"`
	Description   string    `bun:"description,notnull"`
	Location      string    `bun:"location,notnull"`
	ImageUrl      string    `bun:"image_url,notnull"`
	IsActive      bool      `bun:"is_active,notnull"`

	CategoryName string `bun:"category_name,scanonly"`
}

// SortCounterModel remembers the highest sort order ever handed out per scope,
// so orders of deleted rows are never reused.
type SortCounterModel struct {
	bun.BaseModel `bun:"table:sort_counters,alias:sc"`
	Scope         string `bun:"scope,pk"`
	Value         int    `bun:"value,notnull"`
}
