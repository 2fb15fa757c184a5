package session

import (
	"testing"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/stretchr/testify/require"
)

func TestSessionTransitions(t *testing.T) {
	s := NewStore()

	t.Run("starts anonymous", func(t *testing.T) {
		st := s.Snapshot()
		require.Nil(t, st.User)
		require.Nil(t, st.Err)
		require.False(t, st.IsLoading)
		require.False(t, st.IsAuthenticated)
	})

	t.Run("loading clears previous error", func(t *testing.T) {
		s.SetError(domain.NewAuthError(domain.CodeWrongPassword))
		require.NotNil(t, s.Snapshot().Err)

		s.SetLoading()
		st := s.Snapshot()
		require.True(t, st.IsLoading)
		require.Nil(t, st.Err)
	})

	t.Run("sign-in sets user and derives authenticated", func(t *testing.T) {
		s.SetUser(domain.UserProfile{UID: "u1", Email: "a@b.co", DisplayName: "A"})
		st := s.Snapshot()
		require.True(t, st.IsAuthenticated)
		require.False(t, st.IsLoading)
		require.Equal(t, "u1", st.User.UID)
	})

	t.Run("error keeps existing user signed in", func(t *testing.T) {
		s.SetError(domain.NewAuthError(domain.CodeUnknown))
		st := s.Snapshot()
		require.NotNil(t, st.Err)
		require.True(t, st.IsAuthenticated)
		require.Equal(t, "u1", st.User.UID)
	})

	t.Run("display name update rewrites user in place", func(t *testing.T) {
		s.UpdateDisplayName("Renamed")
		require.Equal(t, "Renamed", s.Snapshot().User.DisplayName)
	})

	t.Run("clear resets everything", func(t *testing.T) {
		s.Clear()
		st := s.Snapshot()
		require.Nil(t, st.User)
		require.Nil(t, st.Err)
		require.False(t, st.IsAuthenticated)
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.SetUser(domain.UserProfile{UID: "u1", DisplayName: "Original"})

	st := s.Snapshot()
	st.User.DisplayName = "Mutated"

	require.Equal(t, "Original", s.Snapshot().User.DisplayName)
}

func TestSubscribe(t *testing.T) {
	s := NewStore()

	var seen []State
	cancel := s.Subscribe(func(st State) { seen = append(seen, st) })

	s.SetLoading()
	s.SetUser(domain.UserProfile{UID: "u1"})

	require.Len(t, seen, 3) // initial snapshot + two changes
	require.False(t, seen[0].IsAuthenticated)
	require.True(t, seen[1].IsLoading)
	require.True(t, seen[2].IsAuthenticated)

	cancel()
	s.Clear()
	require.Len(t, seen, 3)
}
