package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/raywall/onet-interest-profiler/pkg/refresh"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(run RefreshFunc) *LambdaHandler {
	h := NewLambdaHandler(&config.Config{Output: "mem"}, zerolog.Nop(), nil)
	h.run = run
	return h
}

func okRun(gotID *string) RefreshFunc {
	return func(ctx context.Context, opts refresh.Options) (*refresh.Summary, error) {
		*gotID = opts.RunID
		return &refresh.Summary{RunID: opts.RunID, Questions: 60, AnswerOptions: 5, Location: opts.Config.Output}, nil
	}
}

func TestLambdaHandler_Schedule(t *testing.T) {
	var gotID string
	h := newHandler(okRun(&gotID))

	summary, err := h.HandleSchedule(context.Background(), events.CloudWatchEvent{ID: "evt-1", Source: "aws.events"})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", gotID)
	assert.Equal(t, 60, summary.Questions)

	// Sem ID no evento um UUID é gerado
	_, err = h.HandleSchedule(context.Background(), events.CloudWatchEvent{})
	require.NoError(t, err)
	assert.Len(t, gotID, 36)
}

func TestLambdaHandler_ScheduleError(t *testing.T) {
	h := newHandler(func(ctx context.Context, opts refresh.Options) (*refresh.Summary, error) {
		return nil, &errs.UpstreamError{StatusCode: 401, URL: "x"}
	})
	_, err := h.HandleSchedule(context.Background(), events.CloudWatchEvent{ID: "evt-2"})
	var upstream *errs.UpstreamError
	assert.True(t, errors.As(err, &upstream))
}

func TestLambdaHandler_HTTP(t *testing.T) {
	var gotID string
	h := newHandler(okRun(&gotID))

	resp, err := h.HandleHTTP(context.Background(), events.APIGatewayProxyRequest{
		Headers: map[string]string{HeaderCorrelationID: "corr-9"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "corr-9", resp.Headers[HeaderCorrelationID])
	assert.Equal(t, "corr-9", gotID)

	var body refresh.Summary
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, 5, body.AnswerOptions)
	assert.Equal(t, "mem", body.Location)
}

func TestLambdaHandler_HTTPErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{&errs.UpstreamError{StatusCode: 401}, http.StatusBadGateway, "upstream"},
		{&errs.NetworkError{Op: "GET", Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, "network"},
		{&errs.ConfigurationError{Key: "ONET_API_KEY"}, http.StatusInternalServerError, "configuration"},
		{&errs.IOError{Op: "write", Err: errors.New("x")}, http.StatusInternalServerError, "io"},
	}

	for _, tc := range cases {
		h := newHandler(func(ctx context.Context, opts refresh.Options) (*refresh.Summary, error) {
			return nil, tc.err
		})
		resp, err := h.HandleHTTP(context.Background(), events.APIGatewayProxyRequest{})
		require.NoError(t, err, "erros do refresh não são erros de invocação")
		assert.Equal(t, tc.status, resp.StatusCode, tc.kind)
		assert.Contains(t, resp.Body, `"kind":"`+tc.kind+`"`)
		assert.NotEmpty(t, resp.Headers[HeaderCorrelationID])
	}
}
