// Package channel provides the named duplex channel primitive the
// server and clients exchange fixed-size frames over, backed by POSIX
// FIFOs.
package channel

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Pipe is a named FIFO carrying whole fixed-size frames. Frames must
// stay under PIPE_BUF so concurrent writers never interleave.
type Pipe struct {
	path string
	file *os.File
}

// New creates a handle for the FIFO at the given path. The FIFO itself
// is not touched until Create or one of the Open methods is called.
func New(path string) *Pipe {
	return &Pipe{path: path}
}

// Path returns the filesystem path of the FIFO
func (p *Pipe) Path() string {
	return p.path
}

// Create makes the FIFO node, replacing any stale one left behind by
// an unclean shutdown
func (p *Pipe) Create() error {
	_ = unix.Unlink(p.path)
	if err := unix.Mkfifo(p.path, 0o666); err != nil {
		return fmt.Errorf("mkfifo %s: %w", p.path, err)
	}
	return nil
}

// OpenRead opens the FIFO for receiving. The descriptor is opened
// read-write so the reader does not see EOF while writers come and go.
func (p *Pipe) OpenRead() error {
	f, err := os.OpenFile(p.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s for read: %w", p.path, err)
	}
	p.file = f
	return nil
}

// OpenWrite opens the FIFO for sending. The open is non-blocking: if
// no reader has the FIFO open it fails immediately instead of hanging,
// so a sender never blocks on a dead peer.
func (p *Pipe) OpenWrite() error {
	f, err := os.OpenFile(p.path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return fmt.Errorf("open %s for write: %w", p.path, err)
	}
	p.file = f
	return nil
}

// Send writes one whole frame
func (p *Pipe) Send(frame []byte) error {
	if p.file == nil {
		return fmt.Errorf("pipe %s is not open", p.path)
	}
	if _, err := p.file.Write(frame); err != nil {
		return fmt.Errorf("write %s: %w", p.path, err)
	}
	return nil
}

// Receive blocks until one whole frame of len(frame) bytes has been
// read into frame
func (p *Pipe) Receive(frame []byte) error {
	if p.file == nil {
		return fmt.Errorf("pipe %s is not open", p.path)
	}
	if _, err := io.ReadFull(p.file, frame); err != nil {
		return err
	}
	return nil
}

// Close closes the descriptor; a blocked Receive is interrupted
func (p *Pipe) Close() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}

// Remove unlinks the FIFO node
func (p *Pipe) Remove() error {
	if err := unix.Unlink(p.path); err != nil && err != unix.ENOENT {
		return fmt.Errorf("unlink %s: %w", p.path, err)
	}
	return nil
}
