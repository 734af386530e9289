package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/throughput-go/internal/application/common"
)

type pingCommand struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd := request.(*pingCommand)
	if cmd.Value == "" {
		return nil, errors.New("empty ping")
	}
	return "pong:" + cmd.Value, nil
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.messages = append(l.messages, level+" "+message)
}

func TestMediator_SendDispatchesToHandler(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, pingHandler{}))

	// Act
	response, err := m.Send(context.Background(), &pingCommand{Value: "a"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong:a", response)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, pingHandler{}))

	// Act
	dupErr := common.RegisterHandler[*pingCommand](m, pingHandler{})
	_, unknownErr := m.Send(context.Background(), "not a command")
	_, nilErr := m.Send(context.Background(), nil)

	// Assert
	assert.ErrorContains(t, dupErr, "already registered")
	assert.ErrorContains(t, unknownErr, "no handler registered")
	assert.ErrorContains(t, nilErr, "cannot be nil")
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, pingHandler{}))

	var calls []string
	trace := func(name string) common.Middleware {
		return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
			calls = append(calls, name+":before")
			response, err := next(ctx, request)
			calls = append(calls, name+":after")
			return response, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))

	// Act
	_, err := m.Send(context.Background(), &pingCommand{Value: "a"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

func TestLoggingMiddleware(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, pingHandler{}))
	m.Use(common.LoggingMiddleware())

	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	_, okErr := m.Send(ctx, &pingCommand{Value: "a"})
	_, failErr := m.Send(ctx, &pingCommand{})

	// Assert
	require.NoError(t, okErr)
	require.Error(t, failErr)
	assert.Equal(t, []string{"DEBUG Request handled", "WARNING Request failed"}, logger.messages)
}
