package tunnel

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
)

const DefaultSSHBinary = "ssh"

// Result is the confirmation written after the tunnel is launched.
type Result struct {
	Port string `json:"port"`
}

// Launcher starts detached ssh port-forwarding processes.
type Launcher struct {
	binary string
	logger *slog.Logger
}

// NewLauncher creates a Launcher that runs the given ssh binary.
func NewLauncher(binary string, logger *slog.Logger) *Launcher {
	if binary == "" {
		binary = DefaultSSHBinary
	}
	return &Launcher{
		binary: binary,
		logger: logger,
	}
}

// Binary returns the ssh client the launcher runs.
func (l *Launcher) Binary() string { return l.binary }

// Run decodes a request from in, launches the tunnel and reports the local
// port on out. Nothing is written to out when the request is malformed.
func (l *Launcher) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	req, err := DecodeRequest(in)
	if err != nil {
		return err
	}
	if err := l.Launch(ctx, req); err != nil {
		return err
	}
	return WriteResult(out, LocalPort)
}

// Launch starts the ssh client for req and returns without waiting for it.
// Failures to start the child are logged and otherwise ignored.
func (l *Launcher) Launch(ctx context.Context, req Request) error {
	args, err := BuildArgs(req)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := InspectKey(req.SSHPrivateKey); err != nil {
		l.logger.Warn("Private key may not be usable", "key", req.SSHPrivateKey, "error", err)
	}

	l.logger.Debug("Launching tunnel", "destination", req.Destination(), "command", CommandLine(l.binary, args))

	// Nil stdio streams are bound to the null device.
	cmd := exec.Command(l.binary, args...)
	cmd.SysProcAttr = detachedProcAttr()
	if err := cmd.Start(); err != nil {
		l.logger.Warn("Failed to start ssh client", "binary", l.binary, "error", err)
		return nil
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		l.logger.Debug("Failed to release ssh process", "pid", pid, "error", err)
	}
	l.logger.Info("Tunnel launched", "destination", req.Destination(), "local_port", LocalPort, "pid", pid)
	return nil
}

// WriteResult writes the single-line JSON confirmation for port and flushes it.
func WriteResult(w io.Writer, port int) error {
	bw := bufio.NewWriter(w)
	if err := json.NewEncoder(bw).Encode(Result{Port: strconv.Itoa(port)}); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush result: %w", err)
	}
	return nil
}
