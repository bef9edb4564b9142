package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appSection = `app:
  profile: "%s"
  log-level: info
  metrics-addr: ":9100"
`

const transportSection = `transport:
  address: "127.0.0.1"
  raft-port: "7410"
  client-port: "7420"
  network: tcp
  timeout: 5
  max-concurrent-streams: 128
`

const defaultRaftSection = `raft:
  node-id: 1
  peers:
    1: "127.0.0.1:7410"
    2: "127.0.0.1:7411"
    3: "127.0.0.1:7412"
  storage-dir: data/node1
  election-timeout-min: 150
  election-timeout-max: 300
  heartbeat-interval: 50
  max-batch-entries: 64
  step-inbox-size: 256
`

func configYaml(profile, raftSection string) string {
	return fmt.Sprintf(appSection, profile) + transportSection + raftSection
}

func writeYaml(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestLoad_BaseConfig(t *testing.T) {
	dir := t.TempDir()
	writeYaml(t, dir, "application", configYaml("", defaultRaftSection))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), cfg.Raft.NodeID)
	assert.Equal(t, "127.0.0.1:7410", cfg.Transport.RaftAddr())
	assert.Equal(t, "127.0.0.1:7420", cfg.Transport.ClientAddr())
	assert.Equal(t, 5*time.Second, cfg.Transport.Timeout())

	minTimeout, maxTimeout := cfg.Raft.ElectionTimeoutRange()
	assert.Equal(t, 150*time.Millisecond, minTimeout)
	assert.Equal(t, 300*time.Millisecond, maxTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.Raft.HeartbeatTick())

	assert.ElementsMatch(t, []uint64{2, 3}, cfg.Raft.PeerIDs())
}

func TestLoad_ProfileOverlay(t *testing.T) {
	dir := t.TempDir()
	writeYaml(t, dir, "application", configYaml("test", defaultRaftSection))
	writeYaml(t, dir, "application-test", "app:\n  profile: test\n  log-level: debug\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel, "profile value overrides base")
	assert.Equal(t, uint64(1), cfg.Raft.NodeID, "base values survive the overlay")
}

func TestLoad_MissingProfileFile(t *testing.T) {
	dir := t.TempDir()
	writeYaml(t, dir, "application", configYaml("prod", defaultRaftSection))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application-prod")
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BROKER_STORAGE_DIR", "/var/lib/raftlog")

	raftSection := `raft:
  node-id: 1
  peers:
    1: "127.0.0.1:7410"
  storage-dir: ${BROKER_STORAGE_DIR}
  election-timeout-min: 150
  election-timeout-max: 300
  heartbeat-interval: 50
  max-batch-entries: 64
`
	writeYaml(t, dir, "application", configYaml("", raftSection))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/raftlog", cfg.Raft.StorageDir)
}

func TestLoad_FailsOnUnsetEnvironment(t *testing.T) {
	dir := t.TempDir()
	content := configYaml("", defaultRaftSection) + "# ${DEFINITELY_NOT_SET_ANYWHERE}\n"
	writeYaml(t, dir, "application", content)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFINITELY_NOT_SET_ANYWHERE")
}

func TestLoad_Validation(t *testing.T) {
	raftSection := func(nodeID, minTimeout, maxTimeout, heartbeat int) string {
		return fmt.Sprintf(`raft:
  node-id: %d
  peers:
    1: "127.0.0.1:7410"
  election-timeout-min: %d
  election-timeout-max: %d
  heartbeat-interval: %d
  max-batch-entries: 64
`, nodeID, minTimeout, maxTimeout, heartbeat)
	}

	cases := []struct {
		name    string
		section string
		wantErr string
	}{
		{"zero node id", raftSection(0, 150, 300, 50), "node-id"},
		{"inverted election range", raftSection(1, 300, 150, 50), "election timeout"},
		{"heartbeat too slow", raftSection(1, 150, 300, 200), "heartbeat-interval"},
		{"self missing from peers", raftSection(9, 150, 300, 50), "own id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeYaml(t, dir, "application", configYaml("", tc.section))

			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
