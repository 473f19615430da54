package commands

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
)

func parseServerCmd(t *testing.T, args ...string) *ServerCmd {
	t.Helper()

	var cli struct {
		Server ServerCmd `cmd:""`
	}
	parser, err := kong.New(&cli)
	require.NoError(t, err)

	_, err = parser.Parse(append([]string{"server"}, args...))
	require.NoError(t, err)
	return &cli.Server
}

func TestServerCmd_listenDefault(t *testing.T) {
	cmd := parseServerCmd(t)
	require.Equal(t, "0.0.0.0:8000", cmd.Listen)
}

func TestServerCmd_listenFromEnv(t *testing.T) {
	t.Setenv("LISTEN_AT", "127.0.0.1:9001")

	cmd := parseServerCmd(t)
	require.Equal(t, "127.0.0.1:9001", cmd.Listen)
}

func TestServerCmd_listenFlagOverridesEnv(t *testing.T) {
	t.Setenv("LISTEN_AT", "127.0.0.1:9001")

	cmd := parseServerCmd(t, "--listen", "127.0.0.1:9002")
	require.Equal(t, "127.0.0.1:9002", cmd.Listen)
}

func TestValidateListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{
			name: "default address",
			addr: "0.0.0.0:8000",
		},
		{
			name: "loopback with explicit port",
			addr: "127.0.0.1:9090",
		},
		{
			name: "empty host",
			addr: ":8000",
		},
		{
			name: "ipv6 any",
			addr: "[::]:8000",
		},
		{
			name:    "empty string",
			addr:    "",
			wantErr: true,
		},
		{
			name:    "no port",
			addr:    "not-an-address",
			wantErr: true,
		},
		{
			name:    "missing port after colon",
			addr:    "0.0.0.0:",
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			addr:    "0.0.0.0:http",
			wantErr: true,
		},
		{
			name:    "port out of range",
			addr:    "0.0.0.0:70000",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateListenAddr(tt.addr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigureHTTPServer(t *testing.T) {
	srv := configureHTTPServer(http.NewServeMux())

	// the listener passed to Serve is the single source of the address
	require.Empty(t, srv.Addr)
	require.Equal(t, time.Second, srv.ReadHeaderTimeout)
	require.NotNil(t, srv.Handler)
}

func TestBindListener(t *testing.T) {
	ln, err := bindListener("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	require.NotEmpty(t, ln.Addr().String())
}

func TestBindListener_invalidAddrDoesNotBind(t *testing.T) {
	ln, err := bindListener("not-an-address")
	require.Error(t, err)
	require.Nil(t, ln)
}

func TestBindListener_addressInUse(t *testing.T) {
	existing, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer existing.Close()

	ln, err := bindListener(existing.Addr().String())
	require.Error(t, err)
	require.Nil(t, ln)

	// the pre-existing listener is undisturbed
	done := make(chan struct{})
	go func() {
		conn, err := existing.Accept()
		if err == nil {
			_ = conn.Close()
		}
		close(done)
	}()

	conn, err := net.Dial("tcp", existing.Addr().String())
	require.NoError(t, err)
	_ = conn.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("existing listener did not accept a connection")
	}
}

func TestServerCmd_RunInvalidAddress(t *testing.T) {
	cmd := &ServerCmd{
		Listen:        "not-an-address",
		ShutdownGrace: time.Second,
		CORSOrigins:   []string{"*"},
	}

	err := cmd.Run(context.Background(), &Globals{Version: "test"})
	require.Error(t, err)
}

func TestServerCmd_RunGracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cmd := &ServerCmd{
		Listen:        "127.0.0.1:0",
		ShutdownGrace: time.Second,
		CORSOrigins:   []string{"*"},
	}

	result := make(chan error, 1)
	go func() {
		result <- cmd.Run(ctx, &Globals{Version: "test"})
	}()

	// give the server a moment to bind, then ask it to stop
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
