package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("Personal")
	require.NoError(t, err)
	assert.Equal(t, model.ChatRoleStaff, role)

	role, err = ParseRole("paciente")
	require.NoError(t, err)
	assert.Equal(t, model.ChatRolePatient, role)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestChatSessionService_LinkUnlink(t *testing.T) {
	ctx := context.Background()
	svc := NewChatSessionService(newFakeStore(), zap.NewNop())

	var resets []int64
	svc.OnReset(func(chatID int64) { resets = append(resets, chatID) })

	_, err := svc.Get(ctx, 10)
	assert.ErrorIs(t, err, ErrNotLinked)

	_, err = svc.Link(ctx, 10, model.ChatRoleStaff, "  ", "Ana")
	assert.ErrorIs(t, err, ErrEmptyCookie)

	session, err := svc.Link(ctx, 10, model.ChatRoleStaff, " abc ", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "abc", session.SessionCookie)

	_, err = svc.RequireStaff(ctx, 10)
	require.NoError(t, err)
	_, err = svc.RequirePatient(ctx, 10)
	assert.ErrorIs(t, err, ErrPatientOnly)

	deleted, err := svc.Unlink(ctx, 10)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Unlink(ctx, 10)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.Equal(t, []int64{10, 10, 10}, resets)
}
