package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsSetAndGet(t *testing.T) {
	var f Flags
	require.NoError(t, f.Set(SelectedRegistrationType, "gst"))
	require.NoError(t, f.Set(EditingTicketID, "42"))
	assert.Equal(t, "gst", f.Get(SelectedRegistrationType))
	assert.Equal(t, "42", f.Get(EditingTicketID))
	assert.Equal(t, uint(42), f.TicketID())

	assert.Error(t, f.Set(FillingOnBehalfTicketID, "abc"))
	assert.ErrorIs(t, f.Set(Key("theme"), "dark"), ErrUnknownKey)

	require.NoError(t, f.Set(EditingTicketID, ""))
	require.NoError(t, f.Set(FillingOnBehalfTicketID, "7"))
	assert.Equal(t, uint(7), f.TicketID())
	assert.Equal(t, "", f.Get(EditingTicketID))
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("fillingOnBehalfTicketId")
	require.NoError(t, err)
	assert.Equal(t, FillingOnBehalfTicketID, k)

	_, err = ParseKey("selected_registration_type")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	f, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Flags{}, f)

	want := Flags{SelectedRegistrationType: "fssai", SelectedRegistrationTitle: "FSSAI Food License"}
	require.NoError(t, store.Save(ctx, 1, want))
	got, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other, err := store.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, Flags{}, other)

	require.NoError(t, store.Clear(ctx, 1))
	got, err = store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Flags{}, got)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)
	require.NoError(t, store.Save(ctx, 1, Flags{EditingTicketID: 3}))

	assert.Eventually(t, func() bool {
		f, _ := store.Load(ctx, 1)
		return f == Flags{}
	}, time.Second, 5*time.Millisecond)
}
