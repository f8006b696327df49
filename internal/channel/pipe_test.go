package channel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlackWLN/seafight/internal/protocol"
)

func TestPipeSendReceive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pipe")

	reader := New(path)
	require.NoError(t, reader.Create())
	require.NoError(t, reader.OpenRead())
	defer reader.Close()
	defer reader.Remove()

	writer := New(path)
	require.NoError(t, writer.OpenWrite())
	defer writer.Close()

	sent := protocol.Packet{
		Type:   protocol.Shoot,
		Sender: "alice",
		X:      3,
		Y:      7,
	}
	frame, err := sent.Encode()
	require.NoError(t, err)
	require.NoError(t, writer.Send(frame))

	buf := make([]byte, protocol.FrameSize)
	require.NoError(t, reader.Receive(buf))

	got, err := protocol.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, sent, got)
}

func TestPipeSequentialFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pipe")

	reader := New(path)
	require.NoError(t, reader.Create())
	require.NoError(t, reader.OpenRead())
	defer reader.Close()

	writer := New(path)
	require.NoError(t, writer.OpenWrite())
	defer writer.Close()

	for i := 0; i < 3; i++ {
		frame, err := (&protocol.Packet{Type: protocol.Login, Sender: "bob", X: i}).Encode()
		require.NoError(t, err)
		require.NoError(t, writer.Send(frame))
	}

	buf := make([]byte, protocol.FrameSize)
	for i := 0; i < 3; i++ {
		require.NoError(t, reader.Receive(buf))
		got, err := protocol.Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, i, got.X)
	}
}

func TestPipeOpenWriteWithoutReaderFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pipe")

	p := New(path)
	require.NoError(t, p.Create())

	// Non-blocking writer open must fail fast when nobody is reading
	assert.Error(t, New(path).OpenWrite())
}

func TestPipeCreateReplacesStaleNode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pipe")

	p := New(path)
	require.NoError(t, p.Create())
	require.NoError(t, p.Create())
	require.NoError(t, p.Remove())
	// Removing a missing node is not an error
	require.NoError(t, p.Remove())
}

func TestClientPathNaming(t *testing.T) {
	assert.Equal(t, "/tmp/seafight-server.pipe", ServerPath("/tmp"))
	assert.Equal(t, "/tmp/seafight-client-alice.pipe", ClientPath("/tmp", "alice"))
}
