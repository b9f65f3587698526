package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func activeEntry(level PermissionLevel) *AccessEntry {
	return &AccessEntry{
		UUID:       id1,
		Permission: level,
		Active:     true,
	}
}

func Test_HasPermission(t *testing.T) {
	require.True(t, activeEntry(PermissionEdit).HasPermission(PermissionView))
	require.True(t, activeEntry(PermissionEdit).HasPermission(PermissionEdit))
	require.False(t, activeEntry(PermissionEdit).HasPermission(PermissionAdmin))
}

func Test_HasPermissionInactive(t *testing.T) {
	e := activeEntry(PermissionAdmin)
	e.Revoke(id2, "offboarded")

	require.False(t, e.HasPermission(PermissionView))
	require.Equal(t, id2, e.RevokedBy)
	require.Equal(t, "offboarded", e.RevocationReason)
	require.NotZero(t, e.RevokedAt)
}

func Test_HasPermissionExpired(t *testing.T) {
	e := activeEntry(PermissionAdmin)
	e.ExpiresAt = time.Now().Unix() - 10

	require.False(t, e.HasPermission(PermissionView))
}

func Test_HasPermissionFutureExpiry(t *testing.T) {
	e := activeEntry(PermissionView)
	e.ExpiresAt = time.Now().Unix() + 3600

	require.True(t, e.HasPermission(PermissionView))
}
