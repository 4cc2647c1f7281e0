package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryServerInterceptor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"ok", nil, "OK"},
		{"status error", status.Error(codes.NotFound, "missing"), "NotFound"},
		{"plain error", errors.New("boom"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCollector(t)
			interceptor := UnaryServerInterceptor(c)
			info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Method"}

			resp, err := interceptor(context.Background(), "req", info, func(context.Context, any) (any, error) {
				return "resp", tt.err
			})

			assert.Equal(t, "resp", resp)
			assert.Equal(t, tt.err, err)
			assert.Equal(t, 1.0, testutil.ToFloat64(
				c.grpcRequestsTotal.WithLabelValues("/test.Service/Method", tt.wantCode),
			))
		})
	}
}

func TestStreamServerInterceptor(t *testing.T) {
	c := newTestCollector(t)
	interceptor := StreamServerInterceptor(c)
	info := &grpc.StreamServerInfo{FullMethod: "/test.Service/Stream"}

	err := interceptor(nil, nil, info, func(any, grpc.ServerStream) error {
		return status.Error(codes.Canceled, "cancel")
	})

	assert.Equal(t, codes.Canceled, status.Code(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		c.grpcRequestsTotal.WithLabelValues("/test.Service/Stream", "Canceled"),
	))
}
