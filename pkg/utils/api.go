package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrBadStatus is returned when the server answers with a non-200 status.
var ErrBadStatus = errors.New("unexpected status")

type API struct {
	client *resty.Client
}

func NewAPI(baseURL string, timeout time.Duration) *API {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(disableLogger{})
	return &API{client: client}
}

// Get decodes the JSON body of a GET request into v.
func (a *API) Get(ctx context.Context, path string, v any) error {
	resp, err := a.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(v).
		Get(path)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrBadStatus, resp.Status())
	}
	return nil
}

// Download fetches a raw body, for media files.
func (a *API) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status())
	}
	return resp.Body(), nil
}

// Post sends v as a JSON body.
func (a *API) Post(ctx context.Context, path string, v any) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(v).
		Post(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s", ErrBadStatus, resp.Status())
	}
	return nil
}

type disableLogger struct{}

func (d disableLogger) Errorf(string, ...interface{}) {}
func (d disableLogger) Warnf(string, ...interface{})  {}
func (d disableLogger) Debugf(string, ...interface{}) {}
