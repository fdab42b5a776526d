package delivery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// EmailSender emails output files as attachments through SMTP.
type EmailSender struct {
	// Server is the SMTP host, optionally host:port. Port defaults to 25.
	Server string
	From   string

	// To holds one or more recipients, separated by semicolons.
	To string
}

// Send emails all output files as attachments of a single message.
func (s *EmailSender) Send(files []string) error {
	host := s.Server
	port := 25

	if h, p, err := net.SplitHostPort(s.Server); err == nil {
		host = h
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}

	now := time.Now()

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", strings.Split(s.To, ";")...)
	m.SetHeader("Subject", "Invoices processed "+now.Format("2006-01-02"))
	m.SetBody("text/plain", "Invoices processed "+now.Format("Mon 3:04 pm, Jan 2, 2006"))

	for _, file := range files {
		m.Attach(file)
	}

	d := gomail.NewDialer(host, port, "", "")

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.WithField("recipients", s.To).Info("Emailed output files")

	return nil
}
