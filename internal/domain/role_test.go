package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_EveryRoleHasCapabilities(t *testing.T) {
	for _, r := range AllRoles {
		t.Run(string(r), func(t *testing.T) {
			assert.True(t, r.Valid())
			assert.NotEmpty(t, r.Label())
		})
	}
}

func TestRole_Capabilities(t *testing.T) {
	tests := []struct {
		role       Role
		publish    bool
		scan       bool
		administer bool
	}{
		{RoleSuperAdmin, false, false, true},
		{RoleInstitution, true, true, false},
		{RoleUser, false, false, false},
		{Role("ROOT"), false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.publish, tt.role.CanPublishEvents())
			assert.Equal(t, tt.scan, tt.role.CanScanTickets())
			assert.Equal(t, tt.administer, tt.role.CanAdminister())
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("INSTITUTION")
	require.NoError(t, err)
	assert.Equal(t, RoleInstitution, r)

	_, err = ParseRole("institution")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewUserProfile_InstitutionStartsBlocked(t *testing.T) {
	org := NewUserProfile("u1", "Robotics Club", "club@campus.edu", "", RoleInstitution, timeZero)
	assert.True(t, org.Blocked)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Robotics%20Club", org.Avatar)

	user := NewUserProfile("u2", "Asha", "asha@campus.edu", "", RoleUser, timeZero)
	assert.False(t, user.Blocked)
}
