package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-flow-api/models"
)

func TestTransitionTableTargets(t *testing.T) {
	for action, tr := range transitionTable {
		assert.True(t, tr.To.Valid(), "action %s targets unknown status %s", action, tr.To)
		for _, from := range tr.From {
			assert.True(t, from.Valid(), "action %s lists unknown source %s", action, from)
			assert.False(t, from.IsTerminal() && from != models.StatusRejected,
				"action %s starts from terminal status %s", action, from)
		}
	}
}

func TestStatusAllows(t *testing.T) {
	reg := transitionTable[ActionRegisterIncoming]
	assert.True(t, reg.statusAllows(models.StatusDraft))
	assert.False(t, reg.statusAllows(models.StatusRegistered))

	// A nil From list admits every non-terminal source.
	rej := transitionTable[ActionReject]
	require.Nil(t, rej.From)
	assert.True(t, rej.statusAllows(models.StatusDraft))
	assert.True(t, rej.statusAllows(models.StatusLeaderReviewing))
	assert.False(t, rej.statusAllows(models.StatusPublished))
	assert.False(t, rej.statusAllows(models.StatusRejected))
}

func TestStatusEdges(t *testing.T) {
	assert.True(t, statusEdges[models.StatusDraft][models.StatusRegistered])
	assert.True(t, statusEdges[models.StatusRegistered][models.StatusDistributed])
	assert.True(t, statusEdges[models.StatusRejected][models.StatusFormatCorrected])

	// Corrected documents can go straight back to leadership.
	assert.True(t, statusEdges[models.StatusFormatCorrected][models.StatusSubmittedToLeader])

	// Nothing leaves PUBLISHED.
	assert.Empty(t, statusEdges[models.StatusPublished])

	assert.False(t, statusEdges[models.StatusDraft][models.StatusApproved])
	assert.False(t, statusEdges[models.StatusDistributed][models.StatusPublished])
}

func TestRoleSetAllows(t *testing.T) {
	clerk := &models.User{Roles: []models.Role{{Name: RoleVanThu}}}
	specialist := &models.User{Roles: []models.Role{{Name: RoleChuyenVien}}}

	assert.True(t, clerkRoles.Allows(clerk))
	assert.False(t, clerkRoles.Allows(specialist))
	assert.False(t, clerkRoles.Allows(nil))

	// A nil set only requires authentication.
	var any RoleSet
	assert.True(t, any.Allows(specialist))
	assert.False(t, any.Allows(nil))

	assert.True(t, IsChiHuyDonVi(&models.User{Roles: []models.Role{{Name: RolePhoTramTruong}}}))
	assert.False(t, IsChiHuyDonVi(specialist))
}
