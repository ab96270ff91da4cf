// Command mculinkd runs the demo device side of the protocol over
// stdin/stdout, standing in for a microcontroller's UART: bytes read from
// stdin are fed to the link as if they had arrived over the wire, and
// whatever the link queues to send is written to stdout. Pair it with a
// pty or a socket-to-pipe bridge to drive it from mculinkctl across a real
// byte stream instead of the in-process demo.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/oriontec/mculink/device"
	"github.com/oriontec/mculink/dispatch"
	proto "github.com/oriontec/mculink/protocol"
	"github.com/oriontec/mculink/scheduler"
	"github.com/oriontec/mculink/transport"
)

var (
	identity     = flag.String("identity", "mculinkd", "identity string reported by get_identify_info")
	pollInterval = flag.Duration("poll-interval", time.Millisecond, "how often the scheduler polls the link for a new frame")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	link := proto.NewLink()
	dev, err := device.New(link, *identity)
	if err != nil {
		glog.Exitf("mculinkd: building schema: %v", err)
	}

	tr := transport.NewFIFO(4*proto.MaxFrameSize, 4*proto.MaxFrameSize)
	dev.Bind(tr)
	disp := dispatch.New(link, dev.Schema)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		glog.Info("mculinkd: stop requested")
		cancel()
	}()

	go pumpIn(os.Stdin, tr)
	go pumpOut(tr, os.Stdout, ctx)

	glog.Infof("mculinkd: serving identity %q on stdin/stdout, polling every %s", *identity, *pollInterval)
	runner := scheduler.NewRunner(*pollInterval, func() { disp.Poll(tr) })
	if err := runner.Run(ctx); err != nil {
		glog.Infof("mculinkd: stopped: %v", err)
	}
}

// pumpIn feeds bytes arriving on r into tr's input ring, the Go analogue of
// a UART receive interrupt pushing bytes into the firmware's ring buffer.
func pumpIn(r io.Reader, tr *transport.FIFO) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			tr.Write(buf[:n])
		}
		if err != nil {
			glog.Errorf("mculinkd: input closed: %v", err)
			return
		}
	}
}

// pumpOut drains whatever the link has queued to send and writes it to w,
// polling on a short tick since tr exposes no blocking read.
func pumpOut(tr *transport.FIFO, w io.Writer, ctx context.Context) {
	buf := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
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
			glog.Errorf("mculinkd: output closed: %v", err)
			return
		}
	}
}
