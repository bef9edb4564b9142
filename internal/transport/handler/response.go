package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"raftlog/internal/raft"
)

func raftError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, raft.ErrShuttingDown):
		return status.Error(codes.Unavailable, "server is shutting down")
	case errors.Is(err, raft.ErrNotLeader):
		return status.Error(codes.FailedPrecondition, "not leader")
	default:
		return status.Errorf(codes.Internal, "raft: %v", err)
	}
}
