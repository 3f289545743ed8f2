package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/josephcavalcante/projeto-todolist/usecase"
)

func sampleNotification() usecase.Notification {
	return usecase.Notification{
		Kind:    usecase.TaskCreated,
		OwnerID: "owner-1",
		Title:   "groceries",
		At:      time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC),
	}
}

func TestHub_DeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil)
	var order []string
	hub.Subscribe(Func(func(usecase.Notification) { order = append(order, "first") }))
	hub.Subscribe(Func(func(usecase.Notification) { order = append(order, "second") }))
	hub.Subscribe(Func(func(usecase.Notification) { order = append(order, "third") }))

	hub.Publish(sampleNotification())
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestHub_Unsubscribe(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil)
	var got []string
	keep := Func(func(usecase.Notification) { got = append(got, "keep") })
	drop := Func(func(usecase.Notification) { got = append(got, "drop") })
	hub.Subscribe(keep)
	hub.Subscribe(drop)

	hub.Unsubscribe(drop)
	hub.Publish(sampleNotification())
	require.Equal(t, []string{"keep"}, got)

	// Unsubscribing an unknown listener is a no-op.
	hub.Unsubscribe(drop)
	hub.Publish(sampleNotification())
	require.Equal(t, []string{"keep", "keep"}, got)
}

func TestHub_PanickingListenerIsIsolated(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil)
	var delivered []string
	hub.Subscribe(Func(func(usecase.Notification) { delivered = append(delivered, "before") }))
	hub.Subscribe(Func(func(usecase.Notification) { panic("listener bug") }))
	hub.Subscribe(Func(func(usecase.Notification) { delivered = append(delivered, "after") }))

	require.NotPanics(t, func() { hub.Publish(sampleNotification()) })
	require.Equal(t, []string{"before", "after"}, delivered)
}

func TestHub_CarriesPayload(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil)
	var got usecase.Notification
	hub.Subscribe(Func(func(n usecase.Notification) { got = n }))

	want := sampleNotification()
	hub.Publish(want)
	require.Equal(t, want, got)
}
