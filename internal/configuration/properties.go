package configuration

import "time"

type Properties struct {
	App       AppProperties       `yaml:"app"`
	Transport TransportProperties `yaml:"transport"`
	Raft      RaftProperties      `yaml:"raft"`
}

type AppProperties struct {
	Profile     string `yaml:"profile"`
	LogLevel    string `yaml:"log-level"`
	MetricsAddr string `yaml:"metrics-addr"`
}

type TransportProperties struct {
	Address              string `yaml:"address"`
	RaftPort             string `yaml:"raft-port"`
	ClientPort           string `yaml:"client-port"`
	Network              string `yaml:"network"`
	TimeoutSeconds       uint64 `yaml:"timeout"`
	MaxConcurrentStreams uint32 `yaml:"max-concurrent-streams"`
}

type WriteAheadLogProperties struct {
	NoSync bool `yaml:"no-sync"`
}

type RaftProperties struct {
	NodeID             uint64                  `yaml:"node-id"`
	Peers              map[uint64]string       `yaml:"peers"`
	StorageDir         string                  `yaml:"storage-dir"`
	ElectionTimeoutMin int64                   `yaml:"election-timeout-min"`
	ElectionTimeoutMax int64                   `yaml:"election-timeout-max"`
	HeartbeatInterval  int64                   `yaml:"heartbeat-interval"`
	MaxBatchEntries    int                     `yaml:"max-batch-entries"`
	StepInboxSize      int                     `yaml:"step-inbox-size"`
	Wal                WriteAheadLogProperties `yaml:"wal"`
}

func (t *TransportProperties) RaftAddr() string {
	return t.Address + ":" + t.RaftPort
}

func (t *TransportProperties) ClientAddr() string {
	return t.Address + ":" + t.ClientPort
}

func (t *TransportProperties) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// Duration fields in the YAML file are plain millisecond counts.
func (r *RaftProperties) ElectionTimeoutRange() (time.Duration, time.Duration) {
	return time.Duration(r.ElectionTimeoutMin) * time.Millisecond, time.Duration(r.ElectionTimeoutMax) * time.Millisecond
}

func (r *RaftProperties) HeartbeatTick() time.Duration {
	return time.Duration(r.HeartbeatInterval) * time.Millisecond
}

// PeerIDs returns the configured cluster members excluding this node.
func (r *RaftProperties) PeerIDs() []uint64 {
	ids := make([]uint64, 0, len(r.Peers))
	for id := range r.Peers {
		if id == r.NodeID {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
