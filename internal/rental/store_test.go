package rental

import (
	"context"
	"errors"
	"github.com/csr-ugra/matrouh-rentals/internal/db"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	connection, err := db.Open("file:" + filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = connection.Close() })

	if err := db.InitSchema(context.Background(), connection); err != nil {
		t.Fatalf("db.InitSchema() error = %v", err)
	}

	current := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		current = current.Add(time.Second)
		return current
	}

	base := []Option{WithClock(clock), WithCoercionHook(nil)}
	return NewStore(connection, append(base, opts...)...)
}

func mustCreateUnit(t *testing.T, s *Store, title string) string {
	t.Helper()

	id, err := s.CreateUnit(context.Background(), UnitInput{
		Title:     title,
		Location:  "الساحل الشمالي",
		Rooms:     2,
		PhotoUrls: []string{},
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("CreateUnit() error = %v", err)
	}

	return id
}

func mustGetUnit(t *testing.T, s *Store, unitId string) Unit {
	t.Helper()

	u, exist, err := s.GetUnit(context.Background(), unitId)
	if err != nil {
		t.Fatalf("GetUnit() error = %v", err)
	}
	if !exist {
		t.Fatalf("GetUnit(%s) exist = false", unitId)
	}

	return u
}

func mustCreateBooking(t *testing.T, s *Store, unitId string) string {
	t.Helper()

	id, err := s.CreateBookingRequest(context.Background(), BookingInput{
		UnitId:         unitId,
		GuestName:      "Mona",
		GuestPhone:     "+201001112233",
		GuestResidence: "Cairo",
		DurationText:   "3 days",
	})
	if err != nil {
		t.Fatalf("CreateBookingRequest() error = %v", err)
	}

	return id
}

func mustGetBooking(t *testing.T, s *Store, bookingId string) BookingRequest {
	t.Helper()

	b, exist, err := s.GetBookingRequest(context.Background(), bookingId)
	if err != nil {
		t.Fatalf("GetBookingRequest() error = %v", err)
	}
	if !exist {
		t.Fatalf("GetBookingRequest(%s) exist = false", bookingId)
	}

	return b
}

// assertBookingInvariant checks that unbooked units carry no booking details.
func assertBookingInvariant(t *testing.T, s *Store) {
	t.Helper()

	units, err := s.ListUnits(context.Background(), false)
	if err != nil {
		t.Fatalf("ListUnits() error = %v", err)
	}
	for _, u := range units {
		if !u.IsBooked && (u.BookedFrom != "" || u.BookedTo != "" || u.BookingNoteText != "") {
			t.Errorf("unit %s is not booked but carries booking details %+v", u.UnitId, u)
		}
	}
}

func TestCreateUnitAssignsSequentialIds(t *testing.T) {
	s := newTestStore(t)

	first := mustCreateUnit(t, s, "first")
	second := mustCreateUnit(t, s, "second")

	if first != "SH-0001" || second != "SH-0002" {
		t.Errorf("ids = %s, %s; want SH-0001, SH-0002", first, second)
	}
}

func TestCreateUnitUsesConfiguredPrefix(t *testing.T) {
	s := newTestStore(t, WithUnitIdPrefix("MT"))

	if id := mustCreateUnit(t, s, "first"); id != "MT-0001" {
		t.Errorf("id = %s, want MT-0001", id)
	}
}

func TestCreateUnitWithDashedPrefix(t *testing.T) {
	s := newTestStore(t, WithUnitIdPrefix("MR-A"))

	first := mustCreateUnit(t, s, "first")
	second := mustCreateUnit(t, s, "second")
	third := mustCreateUnit(t, s, "third")

	if first != "MR-A-0001" || second != "MR-A-0002" || third != "MR-A-0003" {
		t.Errorf("ids = %s, %s, %s; want MR-A-0001, MR-A-0002, MR-A-0003", first, second, third)
	}
}

func TestCreateUnitPastFourDigits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := db.InsertUnit(ctx, s.DB(), &db.UnitModel{UnitId: "SH-9999", Title: "last four digit", Location: "x", PropertyType: string(PropertyApartment), PhotoUrlsJson: "[]", IsActive: true}); err != nil {
		t.Fatal(err)
	}

	first := mustCreateUnit(t, s, "first")
	second := mustCreateUnit(t, s, "second")

	if first != "SH-10000" || second != "SH-10001" {
		t.Errorf("ids = %s, %s; want SH-10000, SH-10001", first, second)
	}
}

func TestUnitPhotoUrlsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	emptyId, err := s.CreateUnit(ctx, UnitInput{Title: "empty", Location: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustGetUnit(t, s, emptyId).PhotoUrls; got == nil || len(got) != 0 {
		t.Errorf("PhotoUrls = %#v, want empty non-nil list", got)
	}

	id, err := s.CreateUnit(ctx, UnitInput{Title: "two", Location: "x", PhotoUrls: []string{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	got := mustGetUnit(t, s, id).PhotoUrls
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("PhotoUrls = %v, want [a b]", got)
	}
}

func TestCreateUnitDefaults(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateUnit(context.Background(), UnitInput{Title: "  padded  ", Location: "x", Rooms: -2})
	if err != nil {
		t.Fatal(err)
	}

	u := mustGetUnit(t, s, id)
	if u.Title != "padded" {
		t.Errorf("Title = %q, want trimmed", u.Title)
	}
	if u.PropertyType != PropertyApartment {
		t.Errorf("PropertyType = %q, want default %q", u.PropertyType, PropertyApartment)
	}
	if u.Rooms != 0 {
		t.Errorf("Rooms = %d, want 0", u.Rooms)
	}
	if u.IsBooked || u.BookedDays != 0 {
		t.Errorf("new unit booked = %v days = %d", u.IsBooked, u.BookedDays)
	}
}

func TestGetUnitMissing(t *testing.T) {
	s := newTestStore(t)

	_, exist, err := s.GetUnit(context.Background(), "SH-9999")
	if err != nil {
		t.Fatalf("GetUnit() error = %v", err)
	}
	if exist {
		t.Error("GetUnit() exist = true for a missing unit")
	}
}

func TestListUnitsActiveOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUnit(t, s, "visible")
	hiddenId, err := s.CreateUnit(ctx, UnitInput{Title: "hidden", Location: "x", IsActive: false})
	if err != nil {
		t.Fatal(err)
	}
	mustCreateUnit(t, s, "visible too")

	active, err := s.ListUnits(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 || active[0].UnitId != "SH-0001" || active[1].UnitId != "SH-0003" {
		t.Errorf("active units = %+v", active)
	}

	all, err := s.ListUnits(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[1].UnitId != hiddenId {
		t.Errorf("all units = %d, want 3 ordered by id", len(all))
	}
}

func TestUpdateUnitKeepsBookingState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := mustCreateUnit(t, s, "before")

	if _, err := s.SetUnitBookingStatus(ctx, UnitBookingInput{UnitId: id, IsBooked: true, BookedFrom: "2026-06-01", BookedTo: "2026-06-03", BookingNoteText: "family"}); err != nil {
		t.Fatal(err)
	}

	exist, err := s.UpdateUnit(ctx, id, UnitInput{
		Title:        "after",
		PropertyType: PropertyChalet,
		Location:     "العين السخنة",
		Rooms:        4,
		PhotoUrls:    []string{"c"},
		PricePerDay:  "2200",
		IsActive:     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !exist {
		t.Fatal("UpdateUnit() exist = false")
	}

	u := mustGetUnit(t, s, id)
	if u.Title != "after" || u.PropertyType != PropertyChalet || u.Rooms != 4 || u.PricePerDay != "2200" || len(u.PhotoUrls) != 1 {
		t.Errorf("unit not updated: %+v", u)
	}
	if !u.IsBooked || u.BookedFrom != "2026-06-01" || u.BookedDays != 3 {
		t.Errorf("booking state changed by update: %+v", u)
	}

	exist, err = s.UpdateUnit(ctx, "SH-0404", UnitInput{Title: "ghost"})
	if err != nil || exist {
		t.Errorf("UpdateUnit(missing) = %v, %v; want false, nil", exist, err)
	}
}

func TestSetUnitBookingStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := mustCreateUnit(t, s, "unit")

	if _, err := s.SetUnitBookingStatus(ctx, UnitBookingInput{UnitId: id, IsBooked: true, BookedFrom: " 2026-07-01 ", BookedTo: "2026-07-07", BookingNoteText: "owner stay"}); err != nil {
		t.Fatal(err)
	}
	assertBookingInvariant(t, s)

	u := mustGetUnit(t, s, id)
	if !u.IsBooked || u.BookedFrom != "2026-07-01" || u.BookedTo != "2026-07-07" || u.BookingNoteText != "owner stay" || u.BookedDays != 7 {
		t.Errorf("booked unit = %+v", u)
	}

	// clearing ignores any dates passed along
	if _, err := s.SetUnitBookingStatus(ctx, UnitBookingInput{UnitId: id, IsBooked: false, BookedFrom: "2026-07-01", BookingNoteText: "stale"}); err != nil {
		t.Fatal(err)
	}
	assertBookingInvariant(t, s)

	u = mustGetUnit(t, s, id)
	if u.IsBooked || u.BookedFrom != "" || u.BookedTo != "" || u.BookingNoteText != "" || u.BookedDays != 0 {
		t.Errorf("cleared unit = %+v", u)
	}
}

func TestCreateBookingRequestValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input BookingInput
		field string
	}{
		{"missing name", BookingInput{UnitId: "SH-0001", GuestPhone: "0100"}, "guest_name"},
		{"blank phone", BookingInput{UnitId: "SH-0001", GuestName: "Mona", GuestPhone: "   "}, "guest_phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateBookingRequest(ctx, tt.input)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("CreateBookingRequest() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %s, want %s", ve.Field, tt.field)
			}
			if !errors.Is(err, &ValidationError{}) {
				t.Error("errors.Is(err, &ValidationError{}) = false")
			}
		})
	}

	if c, _ := s.CountNewBookingRequests(ctx); c != 0 {
		t.Errorf("CountNewBookingRequests() = %d after rejected submissions", c)
	}
}

func TestCreateBookingRequestLeavesUnitOpen(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unitId := mustCreateUnit(t, s, "unit")

	bookingId := mustCreateBooking(t, s, unitId)

	b := mustGetBooking(t, s, bookingId)
	if b.Status != StatusNew || !b.IsNewForAdmin || b.ReviewedAt != nil {
		t.Errorf("new booking = %+v", b)
	}
	if mustGetUnit(t, s, unitId).IsBooked {
		t.Error("submission booked the unit")
	}
	if c, err := s.CountNewBookingRequests(ctx); err != nil || c != 1 {
		t.Errorf("CountNewBookingRequests() = %d, %v; want 1", c, err)
	}
}

func TestReviewConfirmPropagatesToUnit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unitId := mustCreateUnit(t, s, "unit")
	bookingId := mustCreateBooking(t, s, unitId)

	reviewed, err := s.ReviewBooking(ctx, ReviewInput{
		BookingId:         bookingId,
		Status:            string(StatusConfirmed),
		BookedFrom:        "2026-06-01",
		BookedTo:          "2026-06-03",
		AdminScheduleText: "check-in at noon",
	})
	if err != nil {
		t.Fatalf("ReviewBooking() error = %v", err)
	}
	if !reviewed {
		t.Fatal("ReviewBooking() reviewed = false")
	}

	b := mustGetBooking(t, s, bookingId)
	if b.Status != StatusConfirmed || b.IsNewForAdmin || b.ReviewedAt == nil || b.ReviewedAt.IsZero() {
		t.Errorf("reviewed booking = %+v", b)
	}
	if b.BookedDays != 3 {
		t.Errorf("BookedDays = %d, want 3", b.BookedDays)
	}

	u := mustGetUnit(t, s, unitId)
	if !u.IsBooked || u.BookedFrom != "2026-06-01" || u.BookedTo != "2026-06-03" || u.BookingNoteText != "check-in at noon" {
		t.Errorf("unit after confirm = %+v", u)
	}
	assertBookingInvariant(t, s)

	if c, _ := s.CountNewBookingRequests(ctx); c != 0 {
		t.Errorf("CountNewBookingRequests() = %d, want 0", c)
	}
}

func TestReviewRejectLeavesUnitUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unitId := mustCreateUnit(t, s, "unit")
	bookingId := mustCreateBooking(t, s, unitId)
	before := mustGetUnit(t, s, unitId)

	reviewed, err := s.ReviewBooking(ctx, ReviewInput{BookingId: bookingId, Status: "rejected", BookedFrom: "2026-06-01", BookedTo: "2026-06-02"})
	if err != nil || !reviewed {
		t.Fatalf("ReviewBooking() = %v, %v", reviewed, err)
	}

	b := mustGetBooking(t, s, bookingId)
	if b.Status != StatusRejected || b.IsNewForAdmin || b.ReviewedAt == nil {
		t.Errorf("rejected booking = %+v", b)
	}

	after := mustGetUnit(t, s, unitId)
	if after.IsBooked != before.IsBooked || after.BookedFrom != before.BookedFrom || after.BookedTo != before.BookedTo || after.BookingNoteText != before.BookingNoteText {
		t.Errorf("unit changed by rejection: before %+v after %+v", before, after)
	}
	assertBookingInvariant(t, s)
}

func TestReviewUnknownStatusRejects(t *testing.T) {
	var coerced []Coercion
	s := newTestStore(t)
	s.onCoercion = func(c Coercion) { coerced = append(coerced, c) }
	unitId := mustCreateUnit(t, s, "unit")
	bookingId := mustCreateBooking(t, s, unitId)

	if _, err := s.ReviewBooking(context.Background(), ReviewInput{BookingId: bookingId, Status: "maybe"}); err != nil {
		t.Fatal(err)
	}

	if got := mustGetBooking(t, s, bookingId).Status; got != StatusRejected {
		t.Errorf("Status = %s, want rejected", got)
	}
	if mustGetUnit(t, s, unitId).IsBooked {
		t.Error("unknown status booked the unit")
	}
	if len(coerced) != 1 || coerced[0].Field != "status" {
		t.Errorf("coercions = %+v, want one status coercion", coerced)
	}
}

func TestReviewMissingBookingIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unitId := mustCreateUnit(t, s, "unit")
	bookingId := mustCreateBooking(t, s, unitId)

	reviewed, err := s.ReviewBooking(ctx, ReviewInput{BookingId: "does-not-exist", Status: "confirmed", BookedFrom: "2026-06-01", BookedTo: "2026-06-02"})
	if err != nil {
		t.Fatalf("ReviewBooking() error = %v", err)
	}
	if reviewed {
		t.Error("ReviewBooking() reviewed = true for a missing request")
	}

	if b := mustGetBooking(t, s, bookingId); b.Status != StatusNew || !b.IsNewForAdmin {
		t.Errorf("unrelated booking changed: %+v", b)
	}
	if mustGetUnit(t, s, unitId).IsBooked {
		t.Error("unit changed by review of a missing request")
	}
}

func TestReviewTwiceIsGuarded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unitId := mustCreateUnit(t, s, "unit")
	bookingId := mustCreateBooking(t, s, unitId)

	if _, err := s.ReviewBooking(ctx, ReviewInput{BookingId: bookingId, Status: "rejected"}); err != nil {
		t.Fatal(err)
	}

	reviewed, err := s.ReviewBooking(ctx, ReviewInput{BookingId: bookingId, Status: "confirmed", BookedFrom: "2026-06-01", BookedTo: "2026-06-02"})
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("second ReviewBooking() error = %v, want ErrAlreadyReviewed", err)
	}
	if reviewed {
		t.Error("second ReviewBooking() reviewed = true")
	}

	if got := mustGetBooking(t, s, bookingId).Status; got != StatusRejected {
		t.Errorf("Status = %s, want rejected kept", got)
	}
	if mustGetUnit(t, s, unitId).IsBooked {
		t.Error("guarded re-review booked the unit")
	}
}

func TestReviewTwiceOverwritesWhenAllowed(t *testing.T) {
	s := newTestStore(t, WithReReview(true))
	ctx := context.Background()
	unitId := mustCreateUnit(t, s, "unit")
	bookingId := mustCreateBooking(t, s, unitId)

	if _, err := s.ReviewBooking(ctx, ReviewInput{BookingId: bookingId, Status: "confirmed", BookedFrom: "2026-06-01", BookedTo: "2026-06-02", AdminScheduleText: "first"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReviewBooking(ctx, ReviewInput{BookingId: bookingId, Status: "confirmed", BookedFrom: "2026-08-01", BookedTo: "2026-08-10", AdminScheduleText: "moved"}); err != nil {
		t.Fatal(err)
	}

	u := mustGetUnit(t, s, unitId)
	if u.BookedFrom != "2026-08-01" || u.BookedTo != "2026-08-10" || u.BookingNoteText != "moved" || u.BookedDays != 10 {
		t.Errorf("unit after second confirm = %+v", u)
	}
	assertBookingInvariant(t, s)
}

func TestListBookingRequests(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	unitId := mustCreateUnit(t, s, "unit")

	older := mustCreateBooking(t, s, unitId)
	newer := mustCreateBooking(t, s, unitId)
	if _, err := s.ReviewBooking(ctx, ReviewInput{BookingId: older, Status: "rejected", BookedFrom: "2026-06-05", BookedTo: "2026-06-01"}); err != nil {
		t.Fatal(err)
	}

	all, err := s.ListBookingRequests(ctx, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].BookingId != newer || all[1].BookingId != older {
		t.Fatalf("ListBookingRequests() order = %+v, want newest first", all)
	}
	if all[1].BookedDays != 0 {
		t.Errorf("BookedDays for reversed range = %d, want 0", all[1].BookedDays)
	}

	pending, err := s.ListBookingRequests(ctx, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].BookingId != newer {
		t.Errorf("new-only list = %+v", pending)
	}

	limited, err := s.ListBookingRequests(ctx, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limited list has %d entries, want 1", len(limited))
	}
}

func TestLeads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inputs := []LeadInput{
		{UnitId: "SH-0001", Action: LeadWhatsapp, GuestName: "Mona", GuestPhone: "0100"},
		{UnitId: "SH-0001", Action: LeadCall, GuestName: "Ali", GuestPhone: "0111"},
		{UnitId: "SH-0002", Action: LeadBooking, GuestName: "Mona", GuestPhone: "0122", DurationText: "week", Meta: map[string]any{"channel": "form"}},
	}
	for _, in := range inputs {
		if _, err := s.CreateLead(ctx, in); err != nil {
			t.Fatalf("CreateLead() error = %v", err)
		}
	}

	if _, err := s.CreateLead(ctx, LeadInput{UnitId: "SH-0001", Action: "email"}); !errors.Is(err, &ValidationError{}) {
		t.Errorf("CreateLead(unknown action) error = %v, want ValidationError", err)
	}

	leads, err := s.ListLeads(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(leads) != 3 || leads[0].Action != LeadBooking || leads[2].Action != LeadWhatsapp {
		t.Fatalf("ListLeads() = %+v, want most recent first", leads)
	}
	if leads[0].Meta["channel"] != "form" || leads[1].Meta == nil {
		t.Errorf("lead meta = %v / %v", leads[0].Meta, leads[1].Meta)
	}

	if n, err := s.DeleteLeadsByGuest(ctx, "  "); err != nil || n != 0 {
		t.Errorf("DeleteLeadsByGuest(blank) = %d, %v", n, err)
	}

	n, err := s.DeleteLeadsByGuest(ctx, "Mona")
	if err != nil || n != 2 {
		t.Errorf("DeleteLeadsByGuest(name) = %d, %v; want 2", n, err)
	}

	n, err = s.DeleteLeadsByGuest(ctx, "0111")
	if err != nil || n != 1 {
		t.Errorf("DeleteLeadsByGuest(phone) = %d, %v; want 1", n, err)
	}

	if _, err := s.CreateLead(ctx, inputs[0]); err != nil {
		t.Fatal(err)
	}
	if n, err := s.DeleteAllLeads(ctx); err != nil || n != 1 {
		t.Errorf("DeleteAllLeads() = %d, %v; want 1", n, err)
	}
	if leads, _ := s.ListLeads(ctx, 10); len(leads) != 0 {
		t.Errorf("leads left after DeleteAllLeads: %d", len(leads))
	}
}

func TestSponsorSortOrderIsMonotonicPerSlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	add := func(slot Slot) string {
		id, err := s.AddSponsorMedia(ctx, SponsorMediaInput{Slot: slot, MediaKind: MediaImage, Url: "https://example.com/" + string(slot)})
		if err != nil {
			t.Fatalf("AddSponsorMedia() error = %v", err)
		}
		return id
	}
	sortOrderOf := func(id string) int {
		media, err := s.ListSponsorMedia(ctx, false)
		if err != nil {
			t.Fatal(err)
		}
		for _, m := range media {
			if m.MediaId == id {
				return m.SortOrder
			}
		}
		t.Fatalf("media %s not listed", id)
		return 0
	}

	g1 := add(SlotGallery)
	other := add(SlotMainImage)
	g2 := add(SlotGallery)
	if _, err := s.DeleteSponsorMedia(ctx, other); err != nil {
		t.Fatal(err)
	}
	g3 := add(SlotGallery)

	o1, o2, o3 := sortOrderOf(g1), sortOrderOf(g2), sortOrderOf(g3)
	if !(o1 < o2 && o2 < o3) {
		t.Errorf("gallery sort orders = %d, %d, %d; want strictly increasing", o1, o2, o3)
	}
	if o1 != 1 {
		t.Errorf("first gallery sort order = %d, want 1", o1)
	}

	// deleting the newest item does not free its order for reuse
	if _, err := s.DeleteSponsorMedia(ctx, g3); err != nil {
		t.Fatal(err)
	}
	if o4 := sortOrderOf(add(SlotGallery)); o4 <= o3 {
		t.Errorf("sort order after deleting the newest = %d, want > %d", o4, o3)
	}
}

func TestSponsorMediaLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddSponsorMedia(ctx, SponsorMediaInput{Slot: "sidebar", MediaKind: "hologram", Title: " ad ", Url: "https://example.com/a.png"})
	if err != nil {
		t.Fatal(err)
	}

	media, err := s.ListSponsorMedia(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(media) != 1 || media[0].Slot != SlotGallery || media[0].MediaKind != MediaImage || media[0].Title != "ad" || !media[0].IsActive {
		t.Fatalf("media = %+v", media)
	}

	exist, err := s.UpdateSponsorMedia(ctx, id, SponsorMediaInput{Slot: SlotMainVideo, MediaKind: MediaVideo, Url: "https://example.com/v.mp4", IsActive: false})
	if err != nil || !exist {
		t.Fatalf("UpdateSponsorMedia() = %v, %v", exist, err)
	}

	if active, _ := s.ListSponsorMedia(ctx, true); len(active) != 0 {
		t.Errorf("deactivated media still listed as active: %+v", active)
	}
	all, _ := s.ListSponsorMedia(ctx, false)
	if len(all) != 1 || all[0].Slot != SlotMainVideo || all[0].SortOrder != media[0].SortOrder {
		t.Errorf("updated media = %+v", all)
	}

	if exist, err := s.DeleteSponsorMedia(ctx, id); err != nil || !exist {
		t.Errorf("DeleteSponsorMedia() = %v, %v", exist, err)
	}
	if exist, err := s.DeleteSponsorMedia(ctx, id); err != nil || exist {
		t.Errorf("DeleteSponsorMedia(again) = %v, %v; want false, nil", exist, err)
	}
}

func TestGuideCategoryCascadeDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	beaches, err := s.CreateGuideCategory(ctx, GuideCategoryInput{Name: "Beaches", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	food, err := s.CreateGuideCategory(ctx, GuideCategoryInput{Name: "Food", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"Agiba", "Cleopatra", "Rommel"} {
		if _, err := s.CreateGuideItem(ctx, GuideItemInput{CategoryId: beaches, Name: name, IsActive: true}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.CreateGuideItem(ctx, GuideItemInput{CategoryId: food, Name: "Fish market", IsActive: true}); err != nil {
		t.Fatal(err)
	}

	if exist, err := s.DeleteGuideCategory(ctx, beaches); err != nil || !exist {
		t.Fatalf("DeleteGuideCategory() = %v, %v", exist, err)
	}

	if n, err := s.CountGuideItems(ctx, beaches); err != nil || n != 0 {
		t.Errorf("items left in deleted category = %d, %v", n, err)
	}
	if n, _ := s.CountGuideItems(ctx, food); n != 1 {
		t.Errorf("items in other category = %d, want 1", n)
	}
}

func TestGuideListing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, _ := s.CreateGuideCategory(ctx, GuideCategoryInput{Name: "Beaches", IsActive: true})
	hidden, _ := s.CreateGuideCategory(ctx, GuideCategoryInput{Name: "Nightlife", IsActive: false})
	third, _ := s.CreateGuideCategory(ctx, GuideCategoryInput{Name: "Trips", IsActive: true})

	categories, err := s.ListGuideCategories(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 3 || categories[0].SortOrder != 1 || categories[1].SortOrder != 2 || categories[2].SortOrder != 3 {
		t.Fatalf("categories = %+v, want global sort orders 1..3", categories)
	}

	active, _ := s.ListGuideCategories(ctx, true)
	if len(active) != 2 || active[0].CategoryId != first || active[1].CategoryId != third {
		t.Errorf("active categories = %+v", active)
	}

	itemId, _ := s.CreateGuideItem(ctx, GuideItemInput{CategoryId: third, Name: "Siwa day trip", Location: "Siwa", IsActive: true})
	_, _ = s.CreateGuideItem(ctx, GuideItemInput{CategoryId: hidden, Name: "Beach club", IsActive: true})
	_, _ = s.CreateGuideItem(ctx, GuideItemInput{CategoryId: first, Name: "Draft", IsActive: false})

	items, err := s.ListGuideItems(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ItemId != itemId || items[0].CategoryName != "Trips" {
		t.Errorf("active items = %+v", items)
	}

	all, _ := s.ListGuideItems(ctx, false)
	if len(all) != 3 || all[0].CategoryName != "Beaches" || all[2].CategoryName != "Trips" {
		t.Errorf("all items = %+v, want ordered by category", all)
	}

	exist, err := s.UpdateGuideCategory(ctx, hidden, GuideCategoryInput{Name: "Nights", IsActive: true})
	if err != nil || !exist {
		t.Fatalf("UpdateGuideCategory() = %v, %v", exist, err)
	}
	if items, _ := s.ListGuideItems(ctx, true); len(items) != 2 {
		t.Errorf("active items after reactivating category = %d, want 2", len(items))
	}

	exist, err = s.UpdateGuideItem(ctx, itemId, GuideItemInput{CategoryId: first, Name: "Siwa", IsActive: false})
	if err != nil || !exist {
		t.Fatalf("UpdateGuideItem() = %v, %v", exist, err)
	}
	if exist, err := s.DeleteGuideItem(ctx, itemId); err != nil || !exist {
		t.Errorf("DeleteGuideItem() = %v, %v", exist, err)
	}

	// category order is global, a deleted category's order is not reused
	if _, err := s.DeleteGuideCategory(ctx, third); err != nil {
		t.Fatal(err)
	}
	fourth, _ := s.CreateGuideCategory(ctx, GuideCategoryInput{Name: "Shopping", IsActive: true})
	categories, _ = s.ListGuideCategories(ctx, false)
	last := categories[len(categories)-1]
	if last.CategoryId != fourth || last.SortOrder != 4 {
		t.Errorf("last category = %+v, want %s with sort order 4", last, fourth)
	}
}
