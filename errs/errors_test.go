package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&ConfigurationError{Key: "ONET_API_KEY"}, "configuration"},
		{&NetworkError{Op: "GET", URL: "http://x", Err: errors.New("reset")}, "network"},
		{&UpstreamError{StatusCode: 401}, "upstream"},
		{&ParseError{Source: "a.json", Err: errors.New("eof")}, "parse"},
		{&ValidationError{Kind: KindOutOfRange}, "validation"},
		{&NotFoundError{Path: "a.json"}, "not_found"},
		{&IOError{Op: "write", Path: "a.json", Err: fs.ErrPermission}, "io"},
		{fmt.Errorf("refresh: %w", &UpstreamError{StatusCode: 422}), "upstream"},
		{errors.New("boom"), "unknown"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Kind(tc.err))
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "configuration: ONET_API_KEY is required",
		(&ConfigurationError{Key: "ONET_API_KEY"}).Error())

	assert.Equal(t, "upstream: http://api/q returned status 401: Unauthorized",
		(&UpstreamError{StatusCode: 401, URL: "http://api/q", Body: "Unauthorized"}).Error())

	verr := &ValidationError{
		Kind:    KindInvalidCategory,
		Field:   "Question.area",
		Value:   "Invalid",
		Allowed: []string{"Realistic", "Social"},
	}
	assert.Equal(t, `validation: Question.area must be one of [Realistic, Social], got "Invalid"`, verr.Error())

	encErr := &ValidationError{Kind: KindInvalidEncoding, Field: "Question.text", Value: "bad\xff"}
	assert.Equal(t, `validation: Question.text must be valid UTF-8, got "bad\xff"`, encErr.Error())

	ioErr := &IOError{Op: "mkdir", Path: "/root/x", Err: fs.ErrPermission}
	assert.True(t, errors.Is(ioErr, fs.ErrPermission))

	nf := &NotFoundError{Path: "x.json", Err: fs.ErrNotExist}
	assert.True(t, errors.Is(nf, fs.ErrNotExist))
}
