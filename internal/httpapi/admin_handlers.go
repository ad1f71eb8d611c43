package httpapi

import (
	"bytes"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/export"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"github.com/gorilla/mux"
	"net/http"
	"strconv"
	"time"
)

type createdResponse struct {
	Id string `json:"id"`
}

type deletedResponse struct {
	Deleted int `json:"deleted"`
}

type countResponse struct {
	Count int `json:"count"`
}

// written finishes an admin update or delete: 404 when nothing matched,
// otherwise the listing cache is dropped and 204 returned.
func (s *Server) written(w http.ResponseWriter, r *http.Request, what string, exist bool, err error) {
	if err != nil {
		fail(w, r, err)
		return
	}
	if !exist {
		notFound(w, what)
		return
	}

	s.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) created(w http.ResponseWriter, r *http.Request, id string, err error) {
	if err != nil {
		fail(w, r, err)
		return
	}

	s.invalidate(r)
	writeJSON(w, http.StatusCreated, createdResponse{Id: id})
}

func (s *Server) adminListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.store.ListUnits(r.Context(), false)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, units)
}

func (s *Server) adminCreateUnit(w http.ResponseWriter, r *http.Request) {
	input := rental.UnitInput{IsActive: true}
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}

	unitId, err := s.store.CreateUnit(r.Context(), input)
	s.created(w, r, unitId, err)
}

func (s *Server) adminUpdateUnit(w http.ResponseWriter, r *http.Request) {
	input := rental.UnitInput{IsActive: true}
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}

	exist, err := s.store.UpdateUnit(r.Context(), mux.Vars(r)["id"], input)
	s.written(w, r, "unit", exist, err)
}

func (s *Server) adminSetUnitBooking(w http.ResponseWriter, r *http.Request) {
	var input rental.UnitBookingInput
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}
	input.UnitId = mux.Vars(r)["id"]

	exist, err := s.store.SetUnitBookingStatus(r.Context(), input)
	s.written(w, r, "unit", exist, err)
}

func (s *Server) adminListLeads(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", rental.DefaultLeadLimit)
	if err != nil {
		fail(w, r, err)
		return
	}

	leads, err := s.store.ListLeads(r.Context(), limit)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

// adminDeleteLeads removes the leads of one guest when ?guest= is present and
// every lead otherwise.
func (s *Server) adminDeleteLeads(w http.ResponseWriter, r *http.Request) {
	var deleted int
	var err error

	if r.URL.Query().Has("guest") {
		deleted, err = s.store.DeleteLeadsByGuest(r.Context(), r.URL.Query().Get("guest"))
	} else {
		deleted, err = s.store.DeleteAllLeads(r.Context())
	}
	if err != nil {
		fail(w, r, err)
		return
	}

	requestLogger(r).WithField("Deleted", deleted).Info("deleted leads")
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: deleted})
}

func (s *Server) adminExportLeads(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", rental.DefaultLeadLimit)
	if err != nil {
		fail(w, r, err)
		return
	}

	leads, err := s.store.ListLeads(r.Context(), limit)
	if err != nil {
		fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteLeads(&buf, leads); err != nil {
		fail(w, r, err)
		return
	}

	name := fmt.Sprintf("leads-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) adminListBookings(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", rental.DefaultBookingLimit)
	if err != nil {
		fail(w, r, err)
		return
	}

	bookings, err := s.store.ListBookingRequests(r.Context(), limit, queryBool(r, "new"))
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) adminCountNewBookings(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.CountNewBookingRequests(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: c})
}

func (s *Server) adminGetBooking(w http.ResponseWriter, r *http.Request) {
	b, exist, err := s.store.GetBookingRequest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, r, err)
		return
	}
	if !exist {
		notFound(w, "booking request")
		return
	}

	writeJSON(w, http.StatusOK, b)
}

// adminReviewBooking answers 404 for an unknown booking id even though the
// store treats that review as a no-op.
func (s *Server) adminReviewBooking(w http.ResponseWriter, r *http.Request) {
	var input rental.ReviewInput
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}
	input.BookingId = mux.Vars(r)["id"]

	reviewed, err := s.store.ReviewBooking(r.Context(), input)
	if err == nil {
		requestLogger(r).WithField("BookingId", input.BookingId).WithField("Status", input.Status).Info("booking request reviewed")
	}
	s.written(w, r, "booking request", reviewed, err)
}

func (s *Server) adminListSponsors(w http.ResponseWriter, r *http.Request) {
	media, err := s.store.ListSponsorMedia(r.Context(), false)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, media)
}

func (s *Server) adminAddSponsor(w http.ResponseWriter, r *http.Request) {
	var input rental.SponsorMediaInput
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}

	mediaId, err := s.store.AddSponsorMedia(r.Context(), input)
	s.created(w, r, mediaId, err)
}

func (s *Server) adminUpdateSponsor(w http.ResponseWriter, r *http.Request) {
	input := rental.SponsorMediaInput{IsActive: true}
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}

	exist, err := s.store.UpdateSponsorMedia(r.Context(), mux.Vars(r)["id"], input)
	s.written(w, r, "sponsor media", exist, err)
}

func (s *Server) adminDeleteSponsor(w http.ResponseWriter, r *http.Request) {
	exist, err := s.store.DeleteSponsorMedia(r.Context(), mux.Vars(r)["id"])
	s.written(w, r, "sponsor media", exist, err)
}

func (s *Server) adminListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListGuideCategories(r.Context(), false)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) adminCreateCategory(w http.ResponseWriter, r *http.Request) {
	input := rental.GuideCategoryInput{IsActive: true}
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}

	categoryId, err := s.store.CreateGuideCategory(r.Context(), input)
	s.created(w, r, categoryId, err)
}

func (s *Server) adminUpdateCategory(w http.ResponseWriter, r *http.Request) {
	input := rental.GuideCategoryInput{IsActive: true}
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}

	exist, err := s.store.UpdateGuideCategory(r.Context(), mux.Vars(r)["id"], input)
	s.written(w, r, "guide category", exist, err)
}

func (s *Server) adminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	exist, err := s.store.DeleteGuideCategory(r.Context(), mux.Vars(r)["id"])
	s.written(w, r, "guide category", exist, err)
}

func (s *Server) adminListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListGuideItems(r.Context(), false)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) adminCreateItem(w http.ResponseWriter, r *http.Request) {
	input := rental.GuideItemInput{IsActive: true}
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}

	itemId, err := s.store.CreateGuideItem(r.Context(), input)
	s.created(w, r, itemId, err)
}

func (s *Server) adminUpdateItem(w http.ResponseWriter, r *http.Request) {
	input := rental.GuideItemInput{IsActive: true}
	if err := s.decode(w, r, &input); err != nil {
		fail(w, r, err)
		return
	}

	exist, err := s.store.UpdateGuideItem(r.Context(), mux.Vars(r)["id"], input)
	s.written(w, r, "guide item", exist, err)
}

func (s *Server) adminDeleteItem(w http.ResponseWriter, r *http.Request) {
	exist, err := s.store.DeleteGuideItem(r.Context(), mux.Vars(r)["id"])
	s.written(w, r, "guide item", exist, err)
}
