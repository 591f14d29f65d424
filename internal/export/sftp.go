package export

import (
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/amani1505/tailoring-bridge/internal/config"
)

// Deliverer sends generated reports to a remote SFTP drop box.
// Safe for concurrent use: a mutex serializes Deliver and TestConnection.
type Deliverer struct {
	mu         sync.Mutex
	config     config.SFTP
	sshClient  *ssh.Client
	sftpClient *sftp.Client
}

// NewDeliverer creates an SFTP report deliverer
func NewDeliverer(cfg config.SFTP) (*Deliverer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 22
	}

	return &Deliverer{config: cfg}, nil
}

// Deliver uploads a report via SFTP with atomic write (tmp + rename)
func (d *Deliverer) Deliver(remoteName string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.connect(); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = d.Close() }()

	// path.Join, not filepath.Join: SFTP always uses forward slashes
	remotePath := path.Clean("/" + remoteName)[1:]
	if d.config.BasePath != "" {
		remotePath = path.Join(d.config.BasePath, remotePath)
	}

	remoteDir := path.Dir(remotePath)
	// Directory may already exist, or parents may be unwritable while the
	// target dir itself is fine
	_ = d.sftpClient.MkdirAll(remoteDir)

	tmpPath := fmt.Sprintf("%s.tmp.%d", remotePath, time.Now().UnixNano())

	remote, err := d.sftpClient.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create remote file: %w", err)
	}

	_, err = remote.Write(data)
	_ = remote.Close()
	if err != nil {
		_ = d.sftpClient.Remove(tmpPath)
		return fmt.Errorf("upload failed: %w", err)
	}

	if err := d.sftpClient.Rename(tmpPath, remotePath); err != nil {
		_ = d.sftpClient.Remove(tmpPath)
		return fmt.Errorf("rename failed: %w", err)
	}

	return nil
}

// TestConnection verifies SFTP connectivity and authentication
func (d *Deliverer) TestConnection() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.connect(); err != nil {
		return err
	}
	defer func() { _ = d.Close() }()

	testPath := "."
	if d.config.BasePath != "" {
		testPath = d.config.BasePath
	}
	if _, err := d.sftpClient.Stat(testPath); err != nil {
		return fmt.Errorf("connection test failed (path: %s): %w", testPath, err)
	}
	return nil
}

func (d *Deliverer) connect() error {
	timeout := time.Duration(d.config.TimeoutConnectSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	sshConfig := &ssh.ClientConfig{
		User: d.config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.config.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: host key pinning
		Timeout:         timeout,
	}

	addr := fmt.Sprintf("%s:%d", d.config.Host, d.config.Port)
	var err error
	d.sshClient, err = ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return fmt.Errorf("ssh dial: %w", err)
	}

	d.sftpClient, err = sftp.NewClient(d.sshClient)
	if err != nil {
		_ = d.sshClient.Close()
		return fmt.Errorf("sftp session: %w", err)
	}

	return nil
}

// Close closes SFTP and SSH connections
func (d *Deliverer) Close() error {
	var errs []error

	if d.sftpClient != nil {
		if err := d.sftpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sftp close: %w", err))
		}
		d.sftpClient = nil
	}
	if d.sshClient != nil {
		if err := d.sshClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ssh close: %w", err))
		}
		d.sshClient = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
