package testutil

import (
	"bytes"
	"mime/multipart"
	"sync"
	"testing"

	"go-pos-backend/internal/ws"

	"github.com/stretchr/testify/require"
)

// FileHeader builds a real *multipart.FileHeader by round-tripping through a multipart body.
func FileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

// Events records published events in memory.
type Events struct {
	mu     sync.Mutex
	events []ws.Event
}

func (e *Events) Publish(event ws.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

// Actions returns the action of every recorded event in publish order.
func (e *Events) Actions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	actions := make([]string, len(e.events))
	for i, ev := range e.events {
		actions[i] = ev.Action
	}
	return actions
}
