package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/natal-chart-service/internal/adapters/clients"
)

// maxResponseBytes caps a decoded response. A Horizons observer table for
// one instant is a few kilobytes; anything near this is not one.
const maxResponseBytes = 4 << 20

// BaseAdapter is embedded by adapters that speak to one remote service. Its
// errors are already domain errors.
type BaseAdapter struct {
	client  *clients.Client
	service string
}

func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, service: serviceName}
}

func (a *BaseAdapter) Client() *clients.Client { return a.client }

func (a *BaseAdapter) ServiceName() string { return a.service }

// Get issues a GET and hands back the body of a 2xx response for the caller
// to close. operation names the call in error messages ("ephemeris query").
func (a *BaseAdapter) Get(ctx context.Context, path string, query url.Values, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path, query)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.service, operation)
	}

	if resp.StatusCode < http.StatusBadRequest {
		return resp.Body, nil
	}

	defer func() { _ = resp.Body.Close() }()

	return nil, MapHTTPError(resp, nil, a.service, operation)
}

// DecodeResponse decodes a JSON body into a T and closes it. Bodies larger
// than maxResponseBytes fail to decode.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("decoding response: no body")
	}
	defer func() { _ = body.Close() }()

	out := new(T)
	if err := json.NewDecoder(io.LimitReader(body, maxResponseBytes)).Decode(out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return out, nil
}

// Translator turns one external record into a domain value, rejecting
// records the domain cannot represent.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice translates every item and fails on the first bad one,
// naming its index.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]*D, error) {
	out := make([]*D, len(items))

	for i := range items {
		d, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		out[i] = d
	}

	return out, nil
}
