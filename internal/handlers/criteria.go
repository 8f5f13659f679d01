package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/starfederation/datastar-go/datastar"

	"bikeshare-dashboard/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// filterParams is the wire form of a selection, shared by query strings
// and Datastar signals.
type filterParams struct {
	From   string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Season string `json:"season" validate:"omitempty,max=64"`
	Year   string `json:"year" validate:"omitempty,max=16"`
}

func paramsFromQuery(r *http.Request) filterParams {
	q := r.URL.Query()
	return filterParams{
		From:   strings.TrimSpace(q.Get("from")),
		To:     strings.TrimSpace(q.Get("to")),
		Season: strings.TrimSpace(q.Get("season")),
		Year:   strings.TrimSpace(q.Get("year")),
	}
}

func paramsFromSignals(r *http.Request) (filterParams, error) {
	var p filterParams
	if err := datastar.ReadSignals(r, &p); err != nil {
		return p, fmt.Errorf("read signals: %w", err)
	}
	return p, nil
}

func (p filterParams) criteria() (models.Criteria, error) {
	if err := validate.Struct(p); err != nil {
		return models.Criteria{}, err
	}

	var c models.Criteria
	var err error
	if p.From != "" {
		if c.From, err = time.Parse(time.DateOnly, p.From); err != nil {
			return c, err
		}
	}
	if p.To != "" {
		if c.To, err = time.Parse(time.DateOnly, p.To); err != nil {
			return c, err
		}
	}
	c.Season = p.Season
	c.Year = p.Year
	return c, nil
}
