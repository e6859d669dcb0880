package ticketpdf

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCode(t *testing.T) {
	b, err := QRCode("3f1c9a52-7f0e-4d7b-9d1b-8a1d2c3e4f50")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, qrSize, img.Bounds().Dx())
	assert.Equal(t, qrSize, img.Bounds().Dy())
}

func TestRender(t *testing.T) {
	view := TicketView{
		EventTitle:    "Robotics Night",
		Date:          "2026-11-20",
		Time:          "18:30",
		Location:      "Hall B",
		AttendeeName:  "Ana Müller",
		AttendeeEmail: "ana@example.com",
		Token:         "3f1c9a52-7f0e-4d7b-9d1b-8a1d2c3e4f50",
	}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, view, false))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), view.Token)
	assert.Contains(t, string(out), "Robotics Night")

	buf.Reset()
	require.NoError(t, Render(&buf, view))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Robotics Night", want: "ticket-Robotics-Night.pdf"},
		{title: "  Q&A: Go/Rust  ", want: "ticket-Q-A-Go-Rust.pdf"},
		{title: "../../etc", want: "ticket-etc.pdf"},
		{title: "", want: "ticket-event.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.title), tt.title)
	}
}
