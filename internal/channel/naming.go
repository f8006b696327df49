package channel

import "path/filepath"

// DefaultDir is where the FIFOs live unless configured otherwise
const DefaultDir = "/tmp"

const (
	serverPipeName   = "seafight-server.pipe"
	clientPipePrefix = "seafight-client-"
)

// ServerPath returns the well-known inbound channel path of the server
func ServerPath(dir string) string {
	return filepath.Join(dir, serverPipeName)
}

// ClientPath returns the personal notification channel path for a
// login; the name is derived deterministically so the server can reach
// any client knowing only its login
func ClientPath(dir, login string) string {
	return filepath.Join(dir, clientPipePrefix+login+".pipe")
}
