// Package remote implementa los repositorios contra el servicio de registro
// ganadero remoto (API en español: /especies, /animales, /eventos, ...).
// Toda falla de transporte o del servicio se reporta como *errs.TransportError;
// un 404 en lookups puntuales se traduce a errs.ErrNotFound.
package remote

import (
	"errors"
	"time"

	"livestock-registry/internal/domain/errs"
	"livestock-registry/internal/platform/httpclient"
	"livestock-registry/internal/platform/logger"
)

type Client struct {
	http *httpclient.Client
	log  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &Client{http: hc, log: log}, nil
}

// wrapErr normaliza las fallas del colaborador remoto. No distinguimos falla
// de red de rechazo remoto más allá de rescatar el mensaje estructurado.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == 404 {
			return errs.ErrNotFound
		}
		return &errs.TransportError{Message: httpErr.Message, Err: err}
	}
	return &errs.TransportError{Message: op + " failed", Err: err}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	// El servicio manda DATE plano o timestamp ISO según el campo
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	if t := parseDate(s); t != nil {
		return *t
	}
	return time.Time{}
}
