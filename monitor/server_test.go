package monitor

import (
	"io"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestServer_Start(t *testing.T) {
	srv := NewServer("127.0.0.1:0", WithLogger(zerolog.Nop()))
	require.Nil(t, srv.GetAddr())

	srv.RegisterHandler("/fake", http.HandlerFunc(fakeHandler))

	err := srv.Start()
	require.NoError(t, err)

	defer srv.Stop()

	require.NotNil(t, srv.GetAddr())

	res, err := http.Get("http://" + srv.GetAddr().String() + "/fake")
	require.NoError(t, err)

	defer res.Body.Close()

	output, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, "hello", string(output))
	require.NotEmpty(t, res.Header.Get("X-Request-Id"))
}

func TestServer_RequestID(t *testing.T) {
	srv := NewServer("127.0.0.1:0", WithLogger(zerolog.Nop()))
	srv.RegisterHandler("/fake", http.HandlerFunc(fakeHandler))

	require.NoError(t, srv.Start())

	req, err := http.NewRequest(http.MethodGet, "http://"+srv.GetAddr().String()+"/fake", nil)
	require.NoError(t, err)

	req.Header.Set("X-Request-Id", "abc")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	require.Equal(t, "abc", res.Header.Get("X-Request-Id"))

	require.NoError(t, srv.Stop())
}

func TestServer_BadAddr(t *testing.T) {
	srv := NewServer("bad://xx", WithLogger(zerolog.Nop()))

	err := srv.Start()
	require.Error(t, err)
	require.Regexp(t, "^failed to listen on 'bad://xx': ", err.Error())
}

// -----------------------------------------------------------------------------
// Utility functions

func fakeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("hello"))
}
