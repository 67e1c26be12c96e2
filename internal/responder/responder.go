package responder

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tupyy/tpserve/internal/config"
	"github.com/tupyy/tpserve/internal/httpreq"
	srvErrors "github.com/tupyy/tpserve/pkg/errors"
)

// Responder serves files from a web root over a raw connection, one request
// per connection.
type Responder struct {
	root         string
	indexPage    string
	notFoundPage string
	readTimeout  time.Duration
}

func New(cfg config.Server) *Responder {
	return &Responder{
		root:         cfg.WebRoot,
		indexPage:    cfg.IndexPage,
		notFoundPage: cfg.NotFoundPage,
		readTimeout:  cfg.ReadTimeout,
	}
}

// ServeConn reads one request from conn, writes the response and closes conn.
// Requests that cannot be parsed or use a method other than GET or HEAD are
// logged and the connection is closed without a response.
func (r *Responder) ServeConn(conn net.Conn) {
	defer conn.Close()

	log := zap.S().Named("responder").With("conn", uuid.NewString(), "remote", conn.RemoteAddr().String())

	if r.readTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(r.readTimeout))
	}

	req, err := httpreq.ReadRequest(bufio.NewReader(conn))
	if err != nil {
		log.Warnw("dropping request", "error", err)
		return
	}

	resp, err := r.Respond(req)
	if err != nil {
		log.Warnw("dropping request", "method", req.Method, "target", req.Target, "error", err)
		return
	}

	if _, err := conn.Write(resp); err != nil {
		log.Errorw("failed to write response", "error", err)
		return
	}
	log.Debugw("request served", "method", req.Method, "target", req.Target)
}

// Respond builds the response bytes for req. Only GET and HEAD are served.
func (r *Responder) Respond(req *httpreq.Request) ([]byte, error) {
	switch req.Method {
	case httpreq.MethodGet, httpreq.MethodHead:
	default:
		return nil, fmt.Errorf("only GET and HEAD methods are supported: %w", srvErrors.NewUnsupportedMethodError(req.Method.String()))
	}

	status, body := r.load(req.Path())
	if req.Method == httpreq.MethodHead {
		return BuildHeadResponse(status, body), nil
	}
	return BuildGetResponse(status, body), nil
}

func (r *Responder) load(target string) (Status, []byte) {
	if target == "/" {
		target = "/" + r.indexPage
	}

	body, err := r.readFile(target)
	if err == nil {
		return StatusOK, body
	}
	if !srvErrors.IsFileNotFoundError(err) {
		zap.S().Named("responder").Errorw("failed to read file", "target", target, "error", err)
	}

	body, err = r.readFile("/" + r.notFoundPage)
	if err != nil {
		zap.S().Named("responder").Errorw("not found page is unavailable", "page", r.notFoundPage, "error", err)
		body = nil
	}
	return StatusNotFound, body
}

// readFile resolves target under the web root. The target is cleaned as a
// rooted path first so ".." segments cannot leave the root.
func (r *Responder) readFile(target string) ([]byte, error) {
	clean := path.Clean("/" + target)
	full := filepath.Join(r.root, filepath.FromSlash(clean))

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, srvErrors.NewFileNotFoundError(clean)
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, srvErrors.NewFileNotFoundError(clean)
	}

	return os.ReadFile(full)
}
