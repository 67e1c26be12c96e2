package httpreq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strings"

	srvErrors "github.com/tupyy/tpserve/pkg/errors"
)

const (
	Version = "HTTP/1.1"

	// maxHeadLines bounds how many lines are read before the blank line.
	maxHeadLines = 128
)

type RequestLine struct {
	Method  Method
	Target  string
	Version string
}

type Request struct {
	RequestLine
	Header map[string][]string
}

// Path returns the target without its query string.
func (r *Request) Path() string {
	if i := strings.IndexByte(r.Target, '?'); i >= 0 {
		return r.Target[:i]
	}
	return r.Target
}

// ParseRequestLine splits line on single spaces into method, target and
// version. Exactly three parts are accepted, the version must be HTTP/1.1 and
// the method one of the known methods.
func ParseRequestLine(line string) (RequestLine, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return RequestLine{}, srvErrors.NewMalformedRequestError(line)
	}
	if parts[2] != Version {
		return RequestLine{}, srvErrors.NewUnsupportedVersionError(parts[2])
	}
	method, err := ParseMethod(parts[0])
	if err != nil {
		return RequestLine{}, err
	}
	return RequestLine{
		Method:  method,
		Target:  parts[1],
		Version: parts[2],
	}, nil
}

// ReadRequest reads the request head up to the first empty line or EOF.
// The body, if any, is left unread.
func ReadRequest(r *bufio.Reader) (*Request, error) {
	first, err := readLine(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, srvErrors.NewMalformedRequestError("")
		}
		return nil, fmt.Errorf("failed to read request line: %w", err)
	}

	line, err := ParseRequestLine(first)
	if err != nil {
		return nil, err
	}

	req := &Request{
		RequestLine: line,
		Header:      make(map[string][]string),
	}

	for i := 0; ; i++ {
		if i == maxHeadLines {
			return nil, srvErrors.NewMalformedRequestError(first)
		}
		l, err := readLine(r)
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read request header: %w", err)
		}
		if l == "" {
			return req, nil
		}
		name, value, ok := strings.Cut(l, ":")
		if !ok {
			continue
		}
		key := textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(name))
		req.Header[key] = append(req.Header[key], strings.TrimSpace(value))
	}
}

// readLine returns the next line without its LF or CRLF terminator. A final
// line without terminator is returned with a nil error.
func readLine(r *bufio.Reader) (string, error) {
	s, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || s == "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}
