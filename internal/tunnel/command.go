package tunnel

import (
	"fmt"
	"strconv"

	"github.com/kballard/go-shellquote"
)

const (
	LocalPort  = 8888
	RemoteHost = "localhost"
	RemotePort = 8888
)

// BuildArgs returns the ssh client arguments that forward LocalPort to
// RemoteHost:RemotePort on the instance. Only SSHExtraArgs is shell-split.
func BuildArgs(req Request) ([]string, error) {
	extra, err := shellquote.Split(req.SSHExtraArgs)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("split ssh_extra_args %q: %w", req.SSHExtraArgs, err)}
	}

	args := []string{"-o", "StrictHostKeyChecking=no"}
	if req.SSHPrivateKey != "" {
		args = append(args, "-i", req.SSHPrivateKey)
	}
	args = append(args, extra...)
	args = append(args,
		"-L", forwardSpec(),
		"-N", "-q", "-f",
		req.Destination(),
	)
	return args, nil
}

// CommandLine renders binary and args as one shell-quoted line.
func CommandLine(binary string, args []string) string {
	return shellquote.Join(append([]string{binary}, args...)...)
}

func forwardSpec() string {
	return strconv.Itoa(LocalPort) + ":" + RemoteHost + ":" + strconv.Itoa(RemotePort)
}
