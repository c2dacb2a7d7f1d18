package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/search"
)

type loginRequest struct {
	UID      string `json:"uid"`
	Password string `json:"password"`
}

type userResponse struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Role     int    `json:"role"`
	RoleName string `json:"role_name"`
}

// POST /api/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.deps.Auth.Login(r.Context(), req.UID, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{
		UID:      user.UID,
		Name:     user.Name,
		Role:     int(user.Role),
		RoleName: user.Role.String(),
	})
}

type registerRequest struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// POST /api/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.deps.Auth.Register(r.Context(), req.UID, req.Name, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"uid": req.UID, "status": "pending approval"})
}

type orgChartResponse struct {
	Positions []string                    `json:"positions"`
	Members   map[string][]orgChartMember `json:"members"`
}

type orgChartMember struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	ImageURL string `json:"image_url,omitempty"`
	Order    int    `json:"order"`
	Title    string `json:"title,omitempty"`
}

// GET /api/orgchart
func (s *Server) handleOrgChart(w http.ResponseWriter, r *http.Request) {
	positions, grouped, err := s.deps.OrgChart.Grouped(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := orgChartResponse{Positions: positions, Members: map[string][]orgChartMember{}}
	for pos, members := range grouped {
		out := make([]orgChartMember, len(members))
		for i, m := range members {
			out[i] = orgChartMember{
				Name:     m.Name,
				Position: m.Position,
				ImageURL: m.ImageURL,
				Order:    m.Order,
				Title:    m.Title,
			}
		}
		resp.Members[pos] = out
	}
	writeJSON(w, http.StatusOK, resp)
}

type calendarEntry struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author"`
	CreatedAt   string `json:"created_at"`
}

// GET /api/calendar?date=YYYY-MM-DD | ?month=YYYY-MM (default: today)
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	var (
		entries []model.CalendarEntry
		err     error
	)
	switch {
	case r.URL.Query().Get("date") != "":
		entries, err = s.deps.Calendar.ByDate(r.Context(), r.URL.Query().Get("date"))
	case r.URL.Query().Get("month") != "":
		entries, err = s.deps.Calendar.ByMonth(r.Context(), r.URL.Query().Get("month"))
	default:
		entries, err = s.deps.Calendar.Today(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]calendarEntry, len(entries))
	for i, e := range entries {
		out[i] = calendarEntry{
			Date:        e.Date,
			Title:       e.Title,
			Description: e.Description,
			Author:      e.CreatedBy,
			CreatedAt:   e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/stats/weekly?uid=...&week=YYYY-WNN
func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")
	if uid == "" {
		writeError(w, http.StatusBadRequest, "uid query parameter is required")
		return
	}
	sum, err := s.deps.Stats.WeeklySummary(r.Context(), uid, r.URL.Query().Get("week"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"week":         sum.Week,
		"label":        sum.Label,
		"start_date":   sum.StartDate,
		"end_date":     sum.EndDate,
		"net_profit":   sum.NetProfit.String(),
		"rp_count":     sum.RPCount,
		"rp_total":     sum.RPTotal.String(),
		"event_count":  sum.EventCount,
		"event_total":  sum.EventTotal.String(),
		"expected_pay": sum.ExpectedPay.String(),
	})
}

type searchResult struct {
	Kind     string `json:"kind"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Amount   string `json:"amount"`
	Content  string `json:"content,omitempty"`
	Customer string `json:"customer,omitempty"`
	Writer   string `json:"writer"`
}

// GET /api/search?kind=&start=&end=&writer=&item=&q=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := s.deps.Search.Search(r.Context(), search.Query{
		Kind:      q.Get("kind"),
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
		WriterUID: q.Get("writer"),
		Item:      q.Get("item"),
		Keyword:   q.Get("q"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]searchResult, len(results))
	for i, res := range results {
		if res.Kind == search.KindRP {
			out[i] = searchResult{
				Kind:     res.Kind,
				Date:     res.RP.Date,
				Time:     res.RP.Time,
				Item:     res.RP.Item,
				Quantity: res.RP.Quantity,
				Amount:   res.RP.Amount.String(),
				Content:  res.RP.Content,
				Writer:   res.RP.WriterUID,
			}
			continue
		}
		out[i] = searchResult{
			Kind:     res.Kind,
			Date:     res.Tx.Date,
			Time:     res.Tx.Time,
			Item:     res.Tx.Item,
			Quantity: res.Tx.Quantity,
			Amount:   res.Tx.Amount.String(),
			Content:  res.Tx.Content,
			Customer: res.Tx.CustomerName,
			Writer:   res.Tx.WriterUID,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps sentinel errors to HTTP statuses and surfaces
// UserError messages verbatim. Everything else is a 500 with a generic body.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrInvalidLogin), errors.Is(err, common.ErrAuthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrNotApproved), errors.Is(err, common.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrSheetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrDuplicateEntry):
		status = http.StatusConflict
	case errors.Is(err, common.ErrQuotaExhausted), errors.Is(err, common.ErrItemLimit):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrInvalidConfig), errors.Is(err, common.ErrMissingConfig):
		status = http.StatusBadRequest
	}

	var userErr *common.UserError
	if errors.As(err, &userErr) {
		writeError(w, status, userErr.UserMessage)
		return
	}
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
