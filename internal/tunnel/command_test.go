package tunnel

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want []string
	}{
		{
			name: "no extra args",
			req:  Request{SSHUser: "alice", Instance: "10.0.0.5", SSHPrivateKey: "/key.pem"},
			want: []string{
				"-o", "StrictHostKeyChecking=no",
				"-i", "/key.pem",
				"-L", "8888:localhost:8888",
				"-N", "-q", "-f",
				"alice@10.0.0.5",
			},
		},
		{
			name: "quoted extra args are split into tokens",
			req: Request{
				SSHUser:       "alice",
				Instance:      "10.0.0.5",
				SSHPrivateKey: "/key.pem",
				SSHExtraArgs:  `-p 2222 -o "ProxyCommand=foo bar"`,
			},
			want: []string{
				"-o", "StrictHostKeyChecking=no",
				"-i", "/key.pem",
				"-p", "2222", "-o", "ProxyCommand=foo bar",
				"-L", "8888:localhost:8888",
				"-N", "-q", "-f",
				"alice@10.0.0.5",
			},
		},
		{
			name: "fields with metacharacters stay single arguments",
			req: Request{
				SSHUser:       "bob",
				Instance:      "host; rm -rf /",
				SSHPrivateKey: "/keys/my key.pem",
				SSHExtraArgs:  "   ",
			},
			want: []string{
				"-o", "StrictHostKeyChecking=no",
				"-i", "/keys/my key.pem",
				"-L", "8888:localhost:8888",
				"-N", "-q", "-f",
				"bob@host; rm -rf /",
			},
		},
		{
			name: "empty key omits identity flag",
			req:  Request{SSHUser: "alice", Instance: "h"},
			want: []string{
				"-o", "StrictHostKeyChecking=no",
				"-L", "8888:localhost:8888",
				"-N", "-q", "-f",
				"alice@h",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BuildArgs(tc.req)
			if err != nil {
				t.Fatalf("BuildArgs failed: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildArgs_UnterminatedQuote(t *testing.T) {
	_, err := BuildArgs(Request{SSHUser: "u", Instance: "h", SSHExtraArgs: `-o "ProxyCommand=foo`})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestCommandLine(t *testing.T) {
	got := CommandLine("ssh", []string{"-o", "ProxyCommand=foo bar", "alice@h"})
	want := `ssh -o 'ProxyCommand=foo bar' alice@h`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
