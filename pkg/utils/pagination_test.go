package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", url: "/transactions", wantPage: 1, wantLimit: 20},
		{name: "explicit values", url: "/transactions?page=3&limit=50", wantPage: 3, wantLimit: 50},
		{name: "limit capped", url: "/transactions?limit=5000", wantPage: 1, wantLimit: 100},
		{name: "non-numeric ignored", url: "/transactions?page=abc&limit=xyz", wantPage: 1, wantLimit: 20},
		{name: "zero and negative ignored", url: "/transactions?page=0&limit=-5", wantPage: 1, wantLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			page, limit := GetPaginationParams(r)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{
		"date":   "t.date",
		"amount": "t.amount",
	}

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "no ordering falls back to default", url: "/transactions", want: " ORDER BY t.date DESC"},
		{name: "ascending", url: "/transactions?ordering=amount", want: " ORDER BY t.amount ASC"},
		{name: "descending with dash prefix", url: "/transactions?ordering=-date", want: " ORDER BY t.date DESC"},
		{name: "unknown column falls back", url: "/transactions?ordering=password", want: " ORDER BY t.date DESC"},
		{name: "injection attempt falls back", url: "/transactions?ordering=date%3BDROP+TABLE", want: " ORDER BY t.date DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.want, OrderClause(r, allowed, "t.date DESC"))
		})
	}
}
