package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseHangoutFilter_Defaults(t *testing.T) {
	filter, err := parseHangoutFilter(url.Values{})
	require.NoError(t, err)
	require.Equal(t, "startsAt", filter.OrderBy)
	require.False(t, filter.OrderDesc)
	require.Equal(t, 25, filter.Limit)
	require.Equal(t, 0, filter.Offset)
	require.Nil(t, filter.UserID)
	require.Nil(t, filter.IsPublic)
}

func TestParseHangoutFilter_Full(t *testing.T) {
	query := url.Values{}
	query.Set("userId", "u1")
	query.Set("title", "board games")
	query.Set("interestId", "i1")
	query.Set("isPublic", "true")
	query.Set("startsAtFrom", "2026-08-01T10:00:00Z")
	query.Set("startsAtTo", "2026-08-31T10:00:00Z")
	query.Set("latMin", "52.0")
	query.Set("latMax", "52.5")
	query.Set("orderBy", "createdAt")
	query.Set("orderDir", "desc")
	query.Set("page", "3")
	query.Set("limit", "10")

	filter, err := parseHangoutFilter(query)
	require.NoError(t, err)
	require.Equal(t, "u1", *filter.UserID)
	require.Equal(t, "board games", *filter.Title)
	require.Equal(t, "i1", *filter.InterestID)
	require.True(t, *filter.IsPublic)
	require.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), *filter.StartsAtFrom)
	require.Equal(t, 52.0, *filter.LatMin)
	require.Equal(t, 52.5, *filter.LatMax)
	require.Equal(t, "createdAt", filter.OrderBy)
	require.True(t, filter.OrderDesc)
	require.Equal(t, 10, filter.Limit)
	require.Equal(t, 20, filter.Offset)
}

func TestParseHangoutFilter_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad time":  {"startsAtFrom", "yesterday"},
		"bad coord": {"latMin", "north"},
		"bad page":  {"page", "0"},
		"bad limit": {"limit", "-5"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			query := url.Values{}
			query.Set(kv[0], kv[1])
			_, err := parseHangoutFilter(query)
			require.Error(t, err)
		})
	}
}
