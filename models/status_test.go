package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCatalog(t *testing.T) {
	all := AllStatuses()
	assert.Len(t, all, 15)

	seen := make(map[int]DocumentStatus)
	for _, s := range all {
		assert.True(t, s.Valid())
		assert.NotEmpty(t, s.DisplayName())

		code := s.NumericCode()
		require.NotZero(t, code, "status %s has no numeric code", s)
		prev, dup := seen[code]
		require.False(t, dup, "numeric code %d shared by %s and %s", code, prev, s)
		seen[code] = s

		roundTripped, err := StatusFromNumericCode(code)
		require.NoError(t, err)
		assert.Equal(t, s, roundTripped)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("REGISTERED")
	require.NoError(t, err)
	assert.Equal(t, StatusRegistered, s)
	assert.Equal(t, "Đã vào sổ", s.DisplayName())

	_, err = ParseStatus("registered")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)

	_, err = StatusFromNumericCode(99)
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusPublished.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusDraft.IsTerminal())
	assert.False(t, StatusFormatCorrected.IsTerminal())
}

func TestUnknownStatusDisplayFallsBack(t *testing.T) {
	s := DocumentStatus("BOGUS")
	assert.False(t, s.Valid())
	assert.Equal(t, "BOGUS", s.DisplayName())
	assert.Zero(t, s.NumericCode())
}

func TestFillStatusDisplays(t *testing.T) {
	prev := string(StatusDraft)
	h := DocumentHistory{
		PreviousStatus: &prev,
		NewStatus:      string(StatusRegistered),
	}
	h.FillStatusDisplays()
	assert.Equal(t, StatusDraft.DisplayName(), h.PreviousStatusDisplay)
	assert.Equal(t, StatusRegistered.DisplayName(), h.NewStatusDisplay)
}
