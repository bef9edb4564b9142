package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"raftlog/internal/raft"
)

func TestRaftError_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"shutting down", raft.ErrShuttingDown, codes.Unavailable},
		{"not leader", raft.ErrNotLeader, codes.FailedPrecondition},
		{"anything else", errors.New("boom"), codes.Internal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, ok := status.FromError(raftError(tc.err))
			require.True(t, ok)
			assert.Equal(t, tc.want, st.Code())
		})
	}
}

func TestRaftError_WrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), raft.ErrNotLeader)
	st, ok := status.FromError(raftError(wrapped))
	require.True(t, ok)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
}
