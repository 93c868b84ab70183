package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
)

// Page size bounds used when the caller configures none.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	// ErrInvalidCursor means the cursor is malformed or no longer points at
	// the item it was issued for.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrNoCursor means the request asks for the first page.
	ErrNoCursor = errors.New("no cursor provided")
)

// PaginationRequest holds the ?cursor= and ?limit= query parameters.
type PaginationRequest struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"  validate:"omitempty,gte=1,lte=100"`
}

// LimitWithin returns the limit, using def when unset and capping at maxLimit.
func (p *PaginationRequest) LimitWithin(def, maxLimit int) int {
	switch {
	case p.Limit <= 0:
		return def
	case p.Limit > maxLimit:
		return maxLimit
	default:
		return p.Limit
	}
}

// DecodeCursor returns ErrNoCursor for a first-page request.
func (p *PaginationRequest) DecodeCursor() (*CursorData, error) {
	return DecodeCursor(p.Cursor)
}

// Validate rejects a cursor that does not decode.
func (p *PaginationRequest) Validate() error {
	if p.Cursor == "" {
		return nil
	}

	_, err := DecodeCursor(p.Cursor)

	return err
}

// PaginatedResponse is one page of a list endpoint.
type PaginatedResponse[T any] struct {
	Items []T `json:"items"`

	// NextCursor is empty on the last page.
	NextCursor string `json:"nextCursor,omitempty"`

	HasMore bool `json:"hasMore"`
}

// CursorData pins the last item served: its position in the list (ID) and
// the value of its key field, so a cursor into a changed list is detected.
type CursorData struct {
	Field string `json:"f"`
	Value string `json:"v"`
	ID    string `json:"id"`
}

// NewCursor creates cursor data.
func NewCursor(field, value, id string) *CursorData {
	return &CursorData{Field: field, Value: value, ID: id}
}

// EncodeCursor encodes cursor data as URL-safe base64 JSON.
func EncodeCursor(data *CursorData) string {
	if data == nil {
		return ""
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeCursor reverses EncodeCursor. An empty string is ErrNoCursor.
func DecodeCursor(encoded string) (*CursorData, error) {
	if encoded == "" {
		return nil, ErrNoCursor
	}

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, ErrInvalidCursor
	}

	return &data, nil
}

// Pager pages through an ordered in-memory list keyed by Field.
type Pager[T any] struct {
	Field string
	Key   func(T) string
}

// start returns the index after the cursor's item.
func (pg Pager[T]) start(items []T, p *PaginationRequest) (int, error) {
	cursor, err := p.DecodeCursor()
	if errors.Is(err, ErrNoCursor) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	idx, convErr := strconv.Atoi(cursor.ID)
	if convErr != nil || cursor.Field != pg.Field || idx < 0 || idx >= len(items) || pg.Key(items[idx]) != cursor.Value {
		return 0, ErrInvalidCursor
	}

	return idx + 1, nil
}

// Paginate cuts the page after p's cursor, at most limit long, converting
// each item with conv.
func Paginate[T, R any](items []T, p *PaginationRequest, limit int, pg Pager[T], conv func(T) R) (*PaginatedResponse[R], error) {
	start, err := pg.start(items, p)
	if err != nil {
		return nil, err
	}

	end := min(start+limit, len(items))

	resp := &PaginatedResponse[R]{
		Items:   make([]R, 0, end-start),
		HasMore: end < len(items),
	}

	for _, item := range items[start:end] {
		resp.Items = append(resp.Items, conv(item))
	}

	if resp.HasMore && end > start {
		last := end - 1
		resp.NextCursor = EncodeCursor(NewCursor(pg.Field, pg.Key(items[last]), strconv.Itoa(last)))
	}

	return resp, nil
}
