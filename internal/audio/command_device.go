package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
)

// recorders lists known capture binaries in preference order, each with
// the arguments that stream mono 16 kHz WAV to stdout.
var recorders = []struct {
	name string
	args []string
}{
	{"arecord", []string{"-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "wav", "-"}},
	{"rec", []string{"-q", "-t", "wav", "-r", "16000", "-c", "1", "-"}},
	{"sox", []string{"-q", "-d", "-t", "wav", "-r", "16000", "-c", "1", "-"}},
}

// CommandDevice captures microphone input through a recorder binary on
// the host.
type CommandDevice struct{}

// NewCommandDevice creates a command-backed capture device. Binary
// lookup happens at Acquire time so a recorder installed mid-session is
// picked up.
func NewCommandDevice() *CommandDevice {
	return &CommandDevice{}
}

// Acquire starts the capture process. A missing binary or a refused
// start surfaces as ErrPermissionDenied, matching how a denied
// microphone behaves.
func (d *CommandDevice) Acquire(ctx context.Context) (Handle, error) {
	for _, r := range recorders {
		path, err := exec.LookPath(r.name)
		if err != nil {
			continue
		}

		cmd := exec.CommandContext(ctx, path, r.args...)
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("opening capture pipe: %w", err)
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("%w: starting %s: %v", ErrPermissionDenied, r.name, err)
		}
		return &commandHandle{cmd: cmd, out: stdout}, nil
	}

	names := make([]string, len(recorders))
	for i, r := range recorders {
		names[i] = r.name
	}
	return nil, fmt.Errorf("%w: no capture backend found (tried %s)",
		ErrPermissionDenied, strings.Join(names, ", "))
}

type commandHandle struct {
	cmd *exec.Cmd
	out io.ReadCloser
}

func (h *commandHandle) Read() ([]byte, error) {
	buf := make([]byte, 4096)
	n, err := h.out.Read(buf)
	if err != nil && errors.Is(err, fs.ErrClosed) {
		// Close killed the process; the stream is simply over.
		err = io.EOF
	}
	if n > 0 {
		return buf[:n], err
	}
	return nil, err
}

func (h *commandHandle) Close() error {
	if h.cmd.Process != nil {
		h.cmd.Process.Kill()
	}
	h.out.Close()
	return h.cmd.Wait()
}
