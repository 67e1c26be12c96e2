package service

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	v1 "github.com/tupyy/tpserve/api/v1"
)

const (
	apiV1HealthPath = "/api/v1/health"
	apiV1PoolPath   = "/api/v1/pool"
)

// StaticSvc talks to the static server over raw TCP, one request per
// connection.
type StaticSvc struct {
	address string
	timeout time.Duration
}

func NewStaticService(address string, timeout time.Duration) *StaticSvc {
	zap.S().Infow("initializing static service client", "address", address)
	return &StaticSvc{address: address, timeout: timeout}
}

// Send writes raw to a fresh connection and returns everything the server
// wrote before closing it.
func (s *StaticSvc) Send(raw string) ([]byte, error) {
	conn, err := net.DialTimeout("tcp", s.address, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", s.address, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		return nil, err
	}
	if _, err := io.WriteString(conn, raw); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}
	return io.ReadAll(conn)
}

// Do sends "<method> <target> HTTP/1.1" and parses the response.
func (s *StaticSvc) Do(method, target string) (*http.Response, []byte, error) {
	data, err := s.Send(fmt.Sprintf("%s %s HTTP/1.1\r\nHost: %s\r\n\r\n", method, target, s.address))
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, io.ErrUnexpectedEOF
	}

	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(data)), &http.Request{Method: method})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse response: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

// AdminSvc is an HTTP client for the admin API.
type AdminSvc struct {
	baseURL string
	client  *http.Client
}

func NewAdminService(baseURL string) *AdminSvc {
	zap.S().Infow("initializing admin service client", "url", baseURL)
	return &AdminSvc{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *AdminSvc) Health() (*v1.Health, error) {
	var h v1.Health
	if err := a.get(apiV1HealthPath, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (a *AdminSvc) PoolStatus() (*v1.ServerStatus, error) {
	var s v1.ServerStatus
	if err := a.get(apiV1PoolPath, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *AdminSvc) get(path string, out any) error {
	resp, err := a.client.Get(a.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
