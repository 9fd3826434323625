package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminal_DrawsBox(t *testing.T) {
	var buf bytes.Buffer
	NewTerminal(&buf).Notify(context.Background(), Notification{
		Title: "Profile Updated",
		Text:  "Saved",
		Icon:  IconSuccess,
	})

	want := "" +
		"+----------------------+\n" +
		"| [ok] Profile Updated |\n" +
		"+----------------------+\n" +
		"| Saved                |\n" +
		"+----------------------+\n"
	assert.Equal(t, want, buf.String())
}

func TestTerminal_MultilineAndUnknownIcon(t *testing.T) {
	var buf bytes.Buffer
	NewTerminal(&buf).Notify(context.Background(), Notification{Title: "T", Text: "one\nthree"})

	want := "" +
		"+-------+\n" +
		"| T     |\n" +
		"+-------+\n" +
		"| one   |\n" +
		"| three |\n" +
		"+-------+\n"
	assert.Equal(t, want, buf.String())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	ctx := context.Background()
	r.Notify(ctx, Notification{Title: "a"})
	r.Notify(ctx, Notification{Title: "b", Icon: IconError})

	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, "b", last.Title)
	assert.Len(t, r.All(), 2)
}
