package domain

import "time"

// AttendancePoints is awarded to the ticket owner on first successful scan.
const AttendancePoints = 5

type Ticket struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"userId"`
	AnnouncementID uint       `json:"announcementId"`
	Token          string     `json:"token"`
	Attendance     bool       `json:"attendance"`
	RedeemedAt     *time.Time `json:"redeemedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`

	Holder *PublicProfile `json:"holder,omitempty"`
}

type ScanStatus string

const (
	ScanSuccess ScanStatus = "success"
	ScanWarning ScanStatus = "warning"
	ScanError   ScanStatus = "error"
)

const (
	MsgTicketValidated = "Ticket Validated! +5 Points"
	MsgAlreadyScanned  = "Already Scanned"
	MsgInvalidTicket   = "Invalid Ticket"
)

type ScanResult struct {
	Status         ScanStatus     `json:"status"`
	Message        string         `json:"message"`
	AnnouncementID uint           `json:"announcementId"`
	User           *PublicProfile `json:"user,omitempty"`
	ScannedAt      time.Time      `json:"scannedAt"`
}

// IssuedTicket bundles what a ticket document shows.
type IssuedTicket struct {
	Ticket       Ticket
	Announcement Announcement
	Holder       User
}

type AttendanceReport struct {
	AnnouncementID uint     `json:"announcementId"`
	Issued         int      `json:"issued"`
	Attended       int      `json:"attended"`
	Tickets        []Ticket `json:"tickets"`
}
