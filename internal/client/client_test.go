package client_test

import (
	"math/big"
	"net"
	"net/rpc"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AINative-studio/ainative-code/internal/client"
	"github.com/AINative-studio/ainative-code/internal/errors"
	"github.com/AINative-studio/ainative-code/internal/group"
	"github.com/AINative-studio/ainative-code/internal/service"
)

func testParams() *group.Params {
	return group.New(big.NewInt(10009), big.NewInt(5004), big.NewInt(2), big.NewInt(3))
}

// startTestServer binds a service.Service over net/rpc on an
// ephemeral loopback port and serves it until the test ends.
func startTestServer(t *testing.T, params *group.Params) string {
	t.Helper()

	rpcServer := rpc.NewServer()
	svc := service.New(params)
	require.NoError(t, service.Bind(rpcServer, svc))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	go rpcServer.Accept(listener)

	return listener.Addr().String()
}

func TestDriver_RegisterAndAuthenticate(t *testing.T) {
	params := testParams()
	addr := startTestServer(t, params)

	driver := client.New(addr, params)
	require.NoError(t, driver.Connect())
	t.Cleanup(func() { _ = driver.Close() })

	x := big.NewInt(3)
	require.NoError(t, driver.Register("u", x))

	sessionID, err := driver.Authenticate("u", x)
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
}

func TestDriver_Authenticate_WrongSecretFails(t *testing.T) {
	params := testParams()
	addr := startTestServer(t, params)

	driver := client.New(addr, params)
	require.NoError(t, driver.Connect())
	t.Cleanup(func() { _ = driver.Close() })

	require.NoError(t, driver.Register("u", big.NewInt(3)))

	_, err := driver.Authenticate("u", big.NewInt(4))
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.FailedPrecondition, code)
}

func TestDriver_Register_Duplicate(t *testing.T) {
	params := testParams()
	addr := startTestServer(t, params)

	driver := client.New(addr, params)
	require.NoError(t, driver.Connect())
	t.Cleanup(func() { _ = driver.Close() })

	x := big.NewInt(3)
	require.NoError(t, driver.Register("u", x))

	err := driver.Register("u", x)
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.AlreadyExists, code)
}

func TestDriver_Authenticate_UnregisteredUser(t *testing.T) {
	params := testParams()
	addr := startTestServer(t, params)

	driver := client.New(addr, params)
	require.NoError(t, driver.Connect())
	t.Cleanup(func() { _ = driver.Close() })

	_, err := driver.Authenticate("ghost", big.NewInt(3))
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.NotFound, code)
}
