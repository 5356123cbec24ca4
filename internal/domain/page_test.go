package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coupdetete/backend/internal/domain"
)

func ptr(i int) *int { return &i }

func TestNewPageParams(t *testing.T) {
	tests := []struct {
		name   string
		limit  *int
		offset *int
		want   domain.PageParams
	}{
		{"defaults", nil, nil, domain.PageParams{Limit: 50, Offset: 0}},
		{"explicit", ptr(10), ptr(20), domain.PageParams{Limit: 10, Offset: 20}},
		{"limit capped", ptr(500), nil, domain.PageParams{Limit: 100}},
		{"zero limit", ptr(0), nil, domain.PageParams{Limit: 50}},
		{"negative offset", nil, ptr(-5), domain.PageParams{Limit: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NewPageParams(tt.limit, tt.offset))
		})
	}
}
