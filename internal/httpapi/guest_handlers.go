package httpapi

import (
	"encoding/json"
	"github.com/csr-ugra/matrouh-rentals/internal/cache"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"github.com/csr-ugra/matrouh-rentals/internal/session"
	"github.com/gorilla/mux"
	"net/http"
	"net/url"
	"strings"
)

// cached serves a guest listing from the cache, building and storing it on a miss.
func (s *Server) cached(w http.ResponseWriter, r *http.Request, namespace string, params url.Values, build func() (any, error)) {
	key := cache.Key(namespace, params)

	body, found, err := s.cache.Get(r.Context(), key)
	if err != nil {
		requestLogger(r).WithError(err).Warn("error reading listing cache")
	}
	if found {
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(body)
		return
	}

	v, err := build()
	if err != nil {
		fail(w, r, err)
		return
	}

	body, err = json.Marshal(v)
	if err != nil {
		fail(w, r, err)
		return
	}
	body = append(body, '\n')

	if err := s.cache.Set(r.Context(), key, body, cache.DefaultTtl); err != nil {
		requestLogger(r).WithError(err).Warn("error writing listing cache")
	}

	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(body)
}

func unitFilter(r *http.Request) (rental.UnitFilter, error) {
	q := r.URL.Query()

	minRooms, err := queryInt(r, "min_rooms", 0)
	if err != nil {
		return rental.UnitFilter{}, err
	}

	return rental.UnitFilter{
		Location:     strings.TrimSpace(q.Get("location")),
		PropertyType: rental.PropertyType(strings.TrimSpace(q.Get("type"))),
		MinRooms:     minRooms,
		Search:       q.Get("q"),
	}, nil
}

func (s *Server) listUnits(w http.ResponseWriter, r *http.Request) {
	filter, err := unitFilter(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	s.cached(w, r, "units", r.URL.Query(), func() (any, error) {
		units, err := s.store.ListUnits(r.Context(), true)
		if err != nil {
			return nil, err
		}

		return rental.FilterUnits(units, filter), nil
	})
}

// activeUnit loads a unit visible to guests; inactive units count as missing.
func (s *Server) activeUnit(w http.ResponseWriter, r *http.Request) (rental.Unit, bool) {
	u, exist, err := s.store.GetUnit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, r, err)
		return rental.Unit{}, false
	}
	if !exist || !u.IsActive {
		notFound(w, "unit")
		return rental.Unit{}, false
	}

	return u, true
}

func (s *Server) getUnit(w http.ResponseWriter, r *http.Request) {
	u, ok := s.activeUnit(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, u)
}

type contactRequest struct {
	Action       rental.LeadAction `json:"action" validate:"required,oneof=whatsapp call"`
	DurationText string            `json:"duration_text"`
	Note         string            `json:"note"`
}

type contactResponse struct {
	LeadId      string `json:"lead_id"`
	Action      string `json:"action"`
	WhatsappUrl string `json:"whatsapp_url,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// contactUnit records a whatsapp or call lead and hands back the link or number.
func (s *Server) contactUnit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := s.decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	u, ok := s.activeUnit(w, r)
	if !ok {
		return
	}

	sess, _ := session.FromContext(r.Context())
	leadId, err := s.store.CreateLead(r.Context(), rental.LeadInput{
		UnitId:         u.UnitId,
		Action:         req.Action,
		GuestName:      sess.GuestName,
		GuestPhone:     sess.GuestPhone,
		GuestResidence: sess.GuestResidence,
		DurationText:   req.DurationText,
		Note:           req.Note,
		Meta:           map[string]any{"role": string(sess.Role)},
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	resp := contactResponse{LeadId: leadId, Action: string(req.Action)}
	if req.Action == rental.LeadWhatsapp {
		resp.WhatsappUrl, _ = rental.WhatsAppURL(u.ContactWhatsapp, rental.InquiryMessage(u, sess.GuestName, sess.GuestPhone))
	} else {
		resp.Phone = u.ContactPhone
	}

	writeJSON(w, http.StatusCreated, resp)
}

type bookingRequest struct {
	GuestName      string `json:"guest_name"`
	GuestPhone     string `json:"guest_phone"`
	GuestResidence string `json:"guest_residence"`
	DurationText   string `json:"duration_text"`
	Note           string `json:"note"`
}

type bookingResponse struct {
	BookingId string `json:"booking_id"`
	LeadId    string `json:"lead_id"`
}

func orDefault(v string, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}

	return v
}

// submitBooking files a booking request for a unit that is not booked yet.
// Guest details left blank are taken from the session.
func (s *Server) submitBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := s.decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	u, ok := s.activeUnit(w, r)
	if !ok {
		return
	}
	if u.IsBooked {
		fail(w, r, errUnitBooked)
		return
	}

	sess, _ := session.FromContext(r.Context())
	input := rental.BookingInput{
		UnitId:         u.UnitId,
		GuestName:      orDefault(req.GuestName, sess.GuestName),
		GuestPhone:     orDefault(req.GuestPhone, sess.GuestPhone),
		GuestResidence: orDefault(req.GuestResidence, sess.GuestResidence),
		DurationText:   req.DurationText,
		Note:           req.Note,
	}

	bookingId, err := s.store.CreateBookingRequest(r.Context(), input)
	if err != nil {
		fail(w, r, err)
		return
	}

	leadId, err := s.store.CreateLead(r.Context(), rental.LeadInput{
		UnitId:         input.UnitId,
		Action:         rental.LeadBooking,
		GuestName:      input.GuestName,
		GuestPhone:     input.GuestPhone,
		GuestResidence: input.GuestResidence,
		DurationText:   input.DurationText,
		Note:           input.Note,
		Meta:           map[string]any{"booking_id": bookingId},
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	requestLogger(r).WithField("BookingId", bookingId).WithField("UnitId", u.UnitId).Info("booking request submitted")
	writeJSON(w, http.StatusCreated, bookingResponse{BookingId: bookingId, LeadId: leadId})
}

type sponsorsResponse struct {
	MainImage []rental.SponsorMedia `json:"main_image"`
	MainVideo []rental.SponsorMedia `json:"main_video"`
	Gallery   []rental.SponsorMedia `json:"gallery"`
}

func (s *Server) listSponsors(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, "sponsors", nil, func() (any, error) {
		media, err := s.store.ListSponsorMedia(r.Context(), true)
		if err != nil {
			return nil, err
		}

		resp := sponsorsResponse{
			MainImage: []rental.SponsorMedia{},
			MainVideo: []rental.SponsorMedia{},
			Gallery:   []rental.SponsorMedia{},
		}
		for _, m := range media {
			switch m.Slot {
			case rental.SlotMainImage:
				resp.MainImage = append(resp.MainImage, m)
			case rental.SlotMainVideo:
				resp.MainVideo = append(resp.MainVideo, m)
			default:
				resp.Gallery = append(resp.Gallery, m)
			}
		}

		return resp, nil
	})
}

type guideResponse struct {
	Categories []rental.GuideCategory `json:"categories"`
	Items      []rental.GuideItem     `json:"items"`
}

func (s *Server) getGuide(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, "guide", nil, func() (any, error) {
		categories, err := s.store.ListGuideCategories(r.Context(), true)
		if err != nil {
			return nil, err
		}

		items, err := s.store.ListGuideItems(r.Context(), true)
		if err != nil {
			return nil, err
		}

		return guideResponse{Categories: categories, Items: items}, nil
	})
}
