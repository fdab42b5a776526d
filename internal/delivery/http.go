package delivery

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// HTTPSender posts output files to a remote HTTP endpoint using basic
// authentication.
type HTTPSender struct {
	URL      string
	Username string
	Password string

	// Client defaults to http.DefaultClient when nil.
	Client *http.Client
}

// Send posts each file as a text/csv body.
func (s *HTTPSender) Send(files []string) error {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	for _, file := range files {
		if err := s.post(client, file); err != nil {
			return err
		}
	}

	return nil
}

func (s *HTTPSender) post(client *http.Client, file string) error {
	filename := filepath.Base(file)

	body, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", filename, err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	info, err := body.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat output file %s: %w", filename, err)
	}

	req, err := http.NewRequest(http.MethodPost, s.URL, body)
	if err != nil {
		return fmt.Errorf("could not post file to HTTP server: %w", err)
	}
	req.SetBasicAuth(s.Username, s.Password)
	req.Header.Set("Content-Type", "text/csv")
	req.ContentLength = info.Size()

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("could not post file to HTTP server: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("could not post file to HTTP server: status %s", resp.Status)
	}

	log.WithFields(logrus.Fields{
		"file":   filename,
		"status": resp.Status,
	}).Info("Posted file via HTTP")

	return nil
}
