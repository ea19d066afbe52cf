package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/identity"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type Handlers struct {
	Q   *app.QueryService
	B   *app.BookingService
	S   *app.SessionService
	Now func() time.Time
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/hotels", h.searchHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Get("/v1/hotels/{id}/quote", h.quote)

	s.mux.Post("/v1/auth/login", h.login)
	s.mux.Post("/v1/auth/register", h.register)
	s.mux.Post("/v1/auth/logout", h.logout)
	s.mux.Get("/v1/me", h.me)

	s.mux.Post("/v1/bookings", h.createBooking)
	s.mux.Get("/v1/bookings", h.listBookings)
	s.mux.Get("/v1/bookings/{id}", h.getBooking)
	s.mux.Post("/v1/bookings/{id}/cancel", h.cancelBooking)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	var rae *domain.RemoteAuthError
	switch {
	case errors.As(err, &rae):
		status := rae.Status
		if status < 400 || status > 499 {
			status = http.StatusBadGateway
		}
		writeProblem(w, status, http.StatusText(status), rae.Message)
	case errors.Is(err, domain.ErrNotAuthenticated):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "sign in required")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, identity.ErrTimeout):
		writeProblem(w, http.StatusGatewayTimeout, "Gateway Timeout", "identity provider did not answer in time")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return errors.Join(domain.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

/********** hotels **********/

type searchResponse struct {
	Hotels []domain.Hotel `json:"hotels"`
	Total  int            `json:"total"`
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	f, sort := parseSearch(r)
	hotels := h.Q.Search(r.Context(), f, sort)
	writeWithETag(w, r, searchResponse{Hotels: hotels, Total: len(hotels)})
}

// parseSearch reads filters from the query string. Values that do not parse
// are ignored rather than rejected.
func parseSearch(r *http.Request) (domain.SearchFilters, domain.SortOption) {
	q := r.URL.Query()
	f := domain.SearchFilters{
		Destination: q.Get("destination"),
		CheckIn:     q.Get("checkIn"),
		CheckOut:    q.Get("checkOut"),
	}
	if n, err := strconv.Atoi(q.Get("guests")); err == nil {
		f.Guests = &n
	}
	f.PriceMin = parsePrice(q.Get("priceMin"))
	f.PriceMax = parsePrice(q.Get("priceMax"))
	for _, s := range csv(q["starRating"]) {
		if n, err := strconv.Atoi(s); err == nil {
			f.StarRating = append(f.StarRating, n)
		}
	}
	for _, s := range csv(q["amenities"]) {
		f.Amenities = append(f.Amenities, domain.Amenity(s))
	}
	for _, s := range csv(q["propertyType"]) {
		f.PropertyType = append(f.PropertyType, domain.PropertyType(s))
	}
	return f, domain.ParseSort(q.Get("sort"))
}

func parsePrice(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// csv accepts both repeated params and comma separated lists.
func csv(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Q.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeWithETag(w, r, hotel)
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := h.Q.Quote(r.Context(), chi.URLParam(r, "id"), q.Get("roomId"), q.Get("checkIn"), q.Get("checkOut"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

/********** auth **********/

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	sess, err := h.S.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterProfile
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	sess, err := h.S.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.S.Logout(r.Context(), bearerToken(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	if sess == nil {
		writeError(w, domain.ErrNotAuthenticated)
		return
	}
	writeJSON(w, http.StatusOK, sess.User)
}

/********** bookings **********/

type createBookingRequest struct {
	HotelID string `json:"hotelId"`
	domain.BookingFormData
}

func currentUser(r *http.Request) *domain.StoredUser {
	if sess := SessionFrom(r.Context()); sess != nil {
		return &sess.User
	}
	return nil
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		writeError(w, domain.ErrNotAuthenticated)
		return
	}
	var in createBookingRequest
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.B.Create(r.Context(), user, in.HotelID, in.BookingFormData)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		writeError(w, domain.ErrNotAuthenticated)
		return
	}
	bs, err := h.B.ListForUser(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}
	window := domain.BookingWindow(r.URL.Query().Get("window"))
	writeJSON(w, http.StatusOK, app.FilterBookings(bs, window, h.now()))
}

// ownBooking loads a booking visible to the caller. Bookings of other users
// are reported as missing.
func (h *Handlers) ownBooking(w http.ResponseWriter, r *http.Request) (domain.Booking, bool) {
	user := currentUser(r)
	if user == nil {
		writeError(w, domain.ErrNotAuthenticated)
		return domain.Booking{}, false
	}
	id := chi.URLParam(r, "id")
	b, ok, err := h.B.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return domain.Booking{}, false
	}
	if !ok || b.UserID != user.ID {
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
		return domain.Booking{}, false
	}
	return b, true
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := h.ownBooking(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := h.ownBooking(w, r)
	if !ok {
		return
	}
	cancelled, err := h.B.Cancel(r.Context(), b.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": cancelled})
}
