package main

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/oriontec/mculink/device"
	"github.com/oriontec/mculink/dispatch"
	"github.com/oriontec/mculink/host"
	proto "github.com/oriontec/mculink/protocol"
	"github.com/oriontec/mculink/transport"
)

// clientLink is whatever mculinkctl's commands talk to: either an
// in-process device (the "memory" demo link, no external process needed)
// or a real mculinkd subprocess reached over its stdin/stdout pipes.
type clientLink struct {
	sess *host.Session

	// memory-mode fields: driving the device side by hand, one poll at a
	// time, keeps the demo deterministic instead of racing a background
	// goroutine against the CLI's own read of the reply.
	deviceTr *transport.FIFO
	hostTr   *transport.FIFO
	disp     *dispatch.Dispatcher

	// exec-mode fields
	cmd *exec.Cmd
}

func newMemoryLink(identity string) (*clientLink, error) {
	deviceTr := transport.NewFIFO(4*proto.MaxFrameSize, 4*proto.MaxFrameSize)
	hostTr := transport.NewFIFO(4*proto.MaxFrameSize, 4*proto.MaxFrameSize)

	link := proto.NewLink()
	dev, err := device.New(link, identity)
	if err != nil {
		return nil, fmt.Errorf("build demo device: %w", err)
	}
	dev.Bind(deviceTr)

	return &clientLink{
		sess:     host.NewSession(hostTr),
		deviceTr: deviceTr,
		hostTr:   hostTr,
		disp:     dispatch.New(link, dev.Schema),
	}, nil
}

func newExecLink(path string) (*clientLink, error) {
	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("exec %q: %w", path, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("exec %q: %w", path, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("exec %q: %w", path, err)
	}

	hostTr := transport.NewFIFO(4*proto.MaxFrameSize, 4*proto.MaxFrameSize)
	go pumpFIFOTo(hostTr, stdin)
	go pumpReaderToFIFO(stdout, hostTr)

	return &clientLink{sess: host.NewSession(hostTr), cmd: cmd}, nil
}

func pumpFIFOTo(tr *transport.FIFO, w io.Writer) {
	buf := make([]byte, 256)
	for {
		n := tr.Pending()
		if n == 0 {
			time.Sleep(time.Millisecond)
			continue
		}
		if n > len(buf) {
			n = len(buf)
		}
		n = tr.Read(buf[:n])
		if _, err := w.Write(buf[:n]); err != nil {
			return
		}
	}
}

func pumpReaderToFIFO(r io.Reader, tr *transport.FIFO) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			tr.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// pump moves whatever a memory link's device has queued to send into the
// host's input and vice versa, standing in for the wire between them.
func (l *clientLink) pump() {
	if l.deviceTr == nil {
		return
	}
	if n := l.hostTr.Pending(); n > 0 {
		buf := make([]byte, n)
		l.hostTr.Read(buf)
		l.deviceTr.Write(buf)
	}
	if n := l.deviceTr.Pending(); n > 0 {
		buf := make([]byte, n)
		l.deviceTr.Read(buf)
		l.hostTr.Write(buf)
	}
}

// sendAndAwait sends one command and waits up to timeout for at least one
// non-empty reply frame. A memory link drives the device synchronously so
// a reply is available after one pump/poll/pump round; an exec link's
// background pumps need a little wall-clock time instead.
func (l *clientLink) sendAndAwait(entry proto.EncoderEntry, timeout time.Duration, args ...proto.Arg) ([]byte, error) {
	if err := l.sess.Send(entry, args...); err != nil {
		return nil, err
	}

	if l.deviceTr != nil {
		l.pump()
		l.disp.Poll(l.deviceTr)
		l.pump()
		if replies := l.sess.ReadReplies(); len(replies) > 0 {
			return replies[0], nil
		}
		return nil, fmt.Errorf("no reply")
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if replies := l.sess.ReadReplies(); len(replies) > 0 {
			return replies[0], nil
		}
		time.Sleep(time.Millisecond)
	}
	return nil, fmt.Errorf("timed out waiting for a reply")
}

func (l *clientLink) close() {
	if l.cmd != nil && l.cmd.Process != nil {
		_ = l.cmd.Process.Kill()
	}
}
