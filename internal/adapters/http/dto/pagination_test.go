package dto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

func TestPaginationRequest_LimitWithin(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "unset", limit: 0, want: 25},
		{name: "negative", limit: -3, want: 25},
		{name: "within", limit: 10, want: 10},
		{name: "capped", limit: 75, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PaginationRequest{Limit: tt.limit}

			assert.Equal(t, tt.want, p.LimitWithin(25, 50))
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	encoded := EncodeCursor(NewCursor("name", "Tokyo, Japan", "41"))
	require.NotEmpty(t, encoded)

	got, err := DecodeCursor(encoded)
	require.NoError(t, err)
	assert.Equal(t, &CursorData{Field: "name", Value: "Tokyo, Japan", ID: "41"}, got)

	assert.Empty(t, EncodeCursor(nil))
}

func TestDecodeCursor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"empty", "", ErrNoCursor},
		{"not base64", "%%%", ErrInvalidCursor},
		{"not json", base64.URLEncoding.EncodeToString([]byte("nope")), ErrInvalidCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCursor(tt.encoded)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestPaginationRequest_Validate(t *testing.T) {
	assert.NoError(t, (&PaginationRequest{}).Validate())
	assert.NoError(t, (&PaginationRequest{Cursor: EncodeCursor(NewCursor("name", "x", "1"))}).Validate())
	assert.ErrorIs(t, (&PaginationRequest{Cursor: "garbage!"}).Validate(), ErrInvalidCursor)
}

var cityPager = Pager[domain.City]{
	Field: "name",
	Key:   func(c domain.City) string { return c.Name },
}

func testCities() []domain.City {
	return []domain.City{
		{Name: "Lima, Peru", Region: "Latin America"},
		{Name: "Bogotá, Colombia", Region: "Latin America"},
		{Name: "Santiago, Chile", Region: "Latin America"},
		{Name: "Quito, Ecuador", Region: "Latin America"},
		{Name: "Caracas, Venezuela", Region: "Latin America"},
	}
}

func TestPaginate_WalksEveryPage(t *testing.T) {
	cities := testCities()

	var (
		names []string
		pages int
		req   PaginationRequest
	)

	for {
		page, err := Paginate(cities, &req, 2, cityPager, NewCityResponse)
		require.NoError(t, err)

		pages++

		for _, c := range page.Items {
			names = append(names, c.Name)
		}

		if !page.HasMore {
			assert.Empty(t, page.NextCursor)
			break
		}

		require.NotEmpty(t, page.NextCursor)
		req.Cursor = page.NextCursor
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, []string{
		"Lima, Peru",
		"Bogotá, Colombia",
		"Santiago, Chile",
		"Quito, Ecuador",
		"Caracas, Venezuela",
	}, names)
}

func TestPaginate_ExactFit(t *testing.T) {
	page, err := Paginate(testCities(), &PaginationRequest{}, 5, cityPager, NewCityResponse)
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.NextCursor)
}

func TestPaginate_Empty(t *testing.T) {
	page, err := Paginate(nil, &PaginationRequest{}, 5, cityPager, NewCityResponse)
	require.NoError(t, err)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
}

func TestPaginate_StaleCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor *CursorData
	}{
		{name: "different item at position", cursor: NewCursor("name", "Atlantis", "1")},
		{name: "position past the end", cursor: NewCursor("name", "Lima, Peru", "9")},
		{name: "negative position", cursor: NewCursor("name", "Lima, Peru", "-1")},
		{name: "non numeric position", cursor: NewCursor("name", "Lima, Peru", "first")},
		{name: "other field", cursor: NewCursor("region", "Lima, Peru", "0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PaginationRequest{Cursor: EncodeCursor(tt.cursor)}

			_, err := Paginate(testCities(), &req, 2, cityPager, NewCityResponse)

			require.ErrorIs(t, err, ErrInvalidCursor)
		})
	}
}
