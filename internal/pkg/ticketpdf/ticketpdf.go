// Package ticketpdf renders event tickets: a QR code carrying the ticket
// token, embedded in a one-page A5 PDF.
package ticketpdf

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// TicketView is everything printed on a ticket.
type TicketView struct {
	EventTitle    string
	Date          string
	Time          string
	Location      string
	AttendeeName  string
	AttendeeEmail string
	Token         string
}

// QRCode encodes token as a PNG image.
func QRCode(token string) ([]byte, error) {
	png, err := qrcode.Encode(token, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return png, nil
}

// Filename builds the attachment name for the ticket of an event.
func Filename(eventTitle string) string {
	name := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(eventTitle), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "event"
	}

	return "ticket-" + name + ".pdf"
}

// Render writes the ticket PDF for v to w.
func Render(w io.Writer, v TicketView) error {
	return render(w, v, true)
}

func render(w io.Writer, v TicketView, compress bool) error {
	qr, err := QRCode(v.Token)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetCompression(compress)
	pdf.SetTitle("Ticket - "+v.EventTitle, true)
	pdf.SetCreator("clubhouse-api", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	pdf.SetFillColor(33, 37, 41)
	pdf.Rect(0, 0, pageW, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(left, 9)
	pdf.CellFormat(contentW, 10, tr(v.EventTitle), "", 1, "C", false, 0, "")

	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(left, 36)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(28, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(contentW-28, 7, tr(value), "", 1, "L", false, 0, "")
	}
	line("Date", v.Date)
	line("Time", v.Time)
	line("Location", v.Location)
	pdf.Ln(3)
	line("Attendee", v.AttendeeName)
	line("Email", v.AttendeeEmail)

	const imgW = 70.0
	pdf.RegisterImageOptionsReader("qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
	pdf.ImageOptions("qr", (pageW-imgW)/2, pdf.GetY()+8, imgW, imgW, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetXY(left, pdf.GetY()+8+imgW+4)
	pdf.SetFont("Courier", "", 9)
	pdf.CellFormat(contentW, 6, v.Token, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(contentW, 6, tr("Present this code at the entrance. It can be scanned once."), "", 1, "C", false, 0, "")

	if err = pdf.Output(w); err != nil {
		return fmt.Errorf("pdf.Output -> %w", err)
	}

	return nil
}
