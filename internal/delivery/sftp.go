// Package delivery sends processed voucher files to the campus financial
// system over SFTP or HTTP, and optionally emails copies to staff.
package delivery

import (
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/sftp"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// SFTPSender uploads output files to a remote SFTP server.
type SFTPSender struct {
	Server     string
	Username   string
	Password   string
	RemotePath string
}

// Send uploads each file to the configured remote path.
func (s *SFTPSender) Send(files []string) error {
	addr := s.Server
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "22")
	}

	sshConfig := &ssh.ClientConfig{
		User:            s.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(s.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106
	}

	conn, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return fmt.Errorf("SFTP login failed: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.WithError(err).Warn("Failed to close SSH connection")
		}
	}()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return fmt.Errorf("failed to start SFTP session: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Failed to close SFTP session")
		}
	}()

	for _, file := range files {
		if err := s.put(client, file); err != nil {
			return err
		}
	}

	return nil
}

func (s *SFTPSender) put(client *sftp.Client, file string) error {
	filename := filepath.Base(file)

	local, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", filename, err)
	}
	defer func() {
		if err := local.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	remote, err := client.Create(path.Join(s.RemotePath, filename))
	if err != nil {
		return fmt.Errorf("could not put file '%s' on SFTP server: %w", filename, err)
	}
	defer func() {
		if err := remote.Close(); err != nil {
			log.WithError(err).Warn("Failed to close remote file")
		}
	}()

	if _, err := io.Copy(remote, local); err != nil {
		return fmt.Errorf("could not put file '%s' on SFTP server: %w", filename, err)
	}

	log.WithFields(logrus.Fields{
		"file":   filename,
		"server": s.Server,
	}).Info("Uploaded file via SFTP")

	return nil
}
