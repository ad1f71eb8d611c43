// Package rental holds the marketplace entities and the Store that owns every
// read and write of them, including the booking review workflow.
package rental

import "time"

type PropertyType string

const (
	PropertyApartment PropertyType = "شقة"
	PropertyChalet    PropertyType = "شالية"
	PropertyVilla     PropertyType = "فيلا"
	PropertyStudio    PropertyType = "ستوديو"
)

var PropertyTypes = []PropertyType{PropertyApartment, PropertyChalet, PropertyVilla, PropertyStudio}

func (p PropertyType) Valid() bool {
	for _, t := range PropertyTypes {
		if t == p {
			return true
		}
	}

	return false
}

type LeadAction string

const (
	LeadWhatsapp LeadAction = "whatsapp"
	LeadCall     LeadAction = "call"
	LeadBooking  LeadAction = "booking"
)

func (a LeadAction) Valid() bool {
	return a == LeadWhatsapp || a == LeadCall || a == LeadBooking
}

type BookingStatus string

const (
	StatusNew       BookingStatus = "new"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
)

type Slot string

const (
	SlotMainImage Slot = "main_image"
	SlotMainVideo Slot = "main_video"
	SlotGallery   Slot = "gallery"
)

var Slots = []Slot{SlotMainImage, SlotMainVideo, SlotGallery}

func (s Slot) Valid() bool {
	return s == SlotMainImage || s == SlotMainVideo || s == SlotGallery
}

type MediaKind string

const (
	MediaImage         MediaKind = "image"
	MediaVideo         MediaKind = "video"
	MediaAnimatedImage MediaKind = "gif"
)

func (k MediaKind) Valid() bool {
	return k == MediaImage || k == MediaVideo || k == MediaAnimatedImage
}

type Unit struct {
	UnitId          string       `json:"unit_id"`
	Title           string       `json:"title"`
	PropertyType    PropertyType `json:"property_type"`
	Location        string       `json:"location"`
	Rooms           int          `json:"rooms"`
	Description     string       `json:"description"`
	VideoUrl        string       `json:"video_url"`
	CoverImageUrl   string       `json:"cover_image_url"`
	PhotoUrls       []string     `json:"photo_urls"`
	ContactWhatsapp string       `json:"contact_whatsapp"`
	ContactPhone    string       `json:"contact_phone"`
	AvailableFrom   string       `json:"available_from"`
	AvailableTo     string       `json:"available_to"`
	PricePerDay     string       `json:"price_per_day"`
	PricePerWeek    string       `json:"price_per_week"`
	IsActive        bool         `json:"is_active"`
	IsBooked        bool         `json:"is_booked"`
	BookedFrom      string       `json:"booked_from"`
	BookedTo        string       `json:"booked_to"`
	BookingNoteText string       `json:"booking_note_text"`
	BookedDays      int          `json:"booked_days"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// UnitInput carries the admin-editable fields of a unit. Booking state is set
// through SetUnitBookingStatus or a booking review only.
type UnitInput struct {
	Title           string       `json:"title" validate:"required"`
	PropertyType    PropertyType `json:"property_type"`
	Location        string       `json:"location" validate:"required"`
	Rooms           int          `json:"rooms" validate:"gte=0"`
	Description     string       `json:"description"`
	VideoUrl        string       `json:"video_url" validate:"omitempty,url"`
	CoverImageUrl   string       `json:"cover_image_url" validate:"omitempty,url"`
	PhotoUrls       []string     `json:"photo_urls" validate:"dive,url"`
	ContactWhatsapp string       `json:"contact_whatsapp"`
	ContactPhone    string       `json:"contact_phone"`
	AvailableFrom   string       `json:"available_from"`
	AvailableTo     string       `json:"available_to"`
	PricePerDay     string       `json:"price_per_day"`
	PricePerWeek    string       `json:"price_per_week"`
	IsActive        bool         `json:"is_active"`
}

type UnitBookingInput struct {
	UnitId          string `json:"-"`
	IsBooked        bool   `json:"is_booked"`
	BookedFrom      string `json:"booked_from"`
	BookedTo        string `json:"booked_to"`
	BookingNoteText string `json:"booking_note_text"`
}

type Lead struct {
	LeadId         string         `json:"lead_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UnitId         string         `json:"unit_id"`
	Action         LeadAction     `json:"action"`
	GuestName      string         `json:"guest_name"`
	GuestPhone     string         `json:"guest_phone"`
	GuestResidence string         `json:"guest_residence"`
	DurationText   string         `json:"duration_text"`
	Note           string         `json:"note"`
	Meta           map[string]any `json:"meta"`
}

type LeadInput struct {
	UnitId         string
	Action         LeadAction
	GuestName      string
	GuestPhone     string
	GuestResidence string
	DurationText   string
	Note           string
	Meta           map[string]any
}

type BookingRequest struct {
	BookingId         string        `json:"booking_id"`
	CreatedAt         time.Time     `json:"created_at"`
	UnitId            string        `json:"unit_id"`
	GuestName         string        `json:"guest_name"`
	GuestPhone        string        `json:"guest_phone"`
	GuestResidence    string        `json:"guest_residence"`
	DurationText      string        `json:"duration_text"`
	Note              string        `json:"note"`
	Status            BookingStatus `json:"status"`
	IsNewForAdmin     bool          `json:"is_new_for_admin"`
	BookedFrom        string        `json:"booked_from"`
	BookedTo          string        `json:"booked_to"`
	AdminScheduleText string        `json:"admin_schedule_text"`
	BookedDays        int           `json:"booked_days"`
	ReviewedAt        *time.Time    `json:"reviewed_at"`
}

type BookingInput struct {
	UnitId         string
	GuestName      string
	GuestPhone     string
	GuestResidence string
	DurationText   string
	Note           string
}

type ReviewInput struct {
	BookingId         string `json:"-"`
	Status            string `json:"status"`
	BookedFrom        string `json:"booked_from"`
	BookedTo          string `json:"booked_to"`
	AdminScheduleText string `json:"admin_schedule_text"`
}

type SponsorMedia struct {
	MediaId   string    `json:"media_id"`
	CreatedAt time.Time `json:"created_at"`
	Slot      Slot      `json:"slot"`
	MediaKind MediaKind `json:"media_kind"`
	Title     string    `json:"title"`
	Url       string    `json:"url"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
}

type SponsorMediaInput struct {
	Slot      Slot      `json:"slot"`
	MediaKind MediaKind `json:"media_kind"`
	Title     string    `json:"title"`
	Url       string    `json:"url" validate:"required,url"`
	IsActive  bool      `json:"is_active"`
}

type GuideCategory struct {
	CategoryId string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"is_active"`
	SortOrder  int       `json:"sort_order"`
}

type GuideCategoryInput struct {
	Name     string `json:"name" validate:"required"`
	IsActive bool   `json:"is_active"`
}

type GuideItem struct {
	ItemId       string    `json:"item_id"`
	CreatedAt    time.Time `json:"created_at"`
	CategoryId   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	ImageUrl     string    `json:"image_url"`
	IsActive     bool      `json:"is_active"`
}

type GuideItemInput struct {
	CategoryId  string `json:"category_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	ImageUrl    string `json:"image_url" validate:"omitempty,url"`
	IsActive    bool   `json:"is_active"`
}
