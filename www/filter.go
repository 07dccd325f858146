package www

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/angas/solarsavings-go/savings"
)

const (
	filterSessionName = "savings-filter"
	filterDateLayout  = "2006-01-02"
)

// DateFilter is the user selected date range. Zero values leave that
// side of the range open. To is inclusive of the named day.
type DateFilter struct {
	From time.Time
	To   time.Time
}

func (f DateFilter) IsZero() bool {
	return f.From.IsZero() && f.To.IsZero()
}

func (f DateFilter) FromValue() string {
	if f.From.IsZero() {
		return ""
	}
	return f.From.Format(filterDateLayout)
}

func (f DateFilter) ToValue() string {
	if f.To.IsZero() {
		return ""
	}
	return f.To.Format(filterDateLayout)
}

// Apply narrows the dataset to the selected range. The upper bound is
// advanced one day so the selected end date is included.
func (f DateFilter) Apply(d *savings.Dataset) *savings.Dataset {
	if f.IsZero() {
		return d
	}
	to := f.To
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}
	return d.Filter(f.From, to)
}

type filterManager struct {
	store  *sessions.CookieStore
	logger *slog.Logger
}

func newFilterManager(logger *slog.Logger, sessionKey string) *filterManager {
	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &filterManager{store: store, logger: logger}
}

// filter resolves the effective date filter for a request. Query
// parameters take precedence and are persisted to the session so the
// selection survives page loads. An explicit empty parameter clears
// that side of the range.
func (fm *filterManager) filter(w http.ResponseWriter, r *http.Request) DateFilter {
	session, err := fm.store.Get(r, filterSessionName)
	if err != nil {
		fm.logger.Debug("failed to decode filter session", slog.Any("error", err))
		session, _ = fm.store.New(r, filterSessionName)
	}

	dirty := false
	query := r.URL.Query()
	for _, key := range []string{"from", "to"} {
		if !query.Has(key) {
			continue
		}
		value := query.Get(key)
		if value == "" {
			delete(session.Values, key)
			dirty = true
			continue
		}
		if _, err := time.Parse(filterDateLayout, value); err != nil {
			fm.logger.Debug("ignoring malformed filter date",
				slog.String("param", key), slog.String("value", value))
			continue
		}
		session.Values[key] = value
		dirty = true
	}

	if dirty {
		if err := session.Save(r, w); err != nil {
			fm.logger.Error("failed to save filter session", slog.Any("error", err))
		}
	}

	var f DateFilter
	if value, ok := session.Values["from"].(string); ok {
		if t, err := time.Parse(filterDateLayout, value); err == nil {
			f.From = t.UTC()
		}
	}
	if value, ok := session.Values["to"].(string); ok {
		if t, err := time.Parse(filterDateLayout, value); err == nil {
			f.To = t.UTC()
		}
	}
	return f
}
