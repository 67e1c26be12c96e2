package responder

import (
	"bytes"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
)

type Status string

const (
	StatusOK       Status = "200 OK"
	StatusNotFound Status = "404 NOT FOUND"
)

// BuildGetResponse renders a full response: status line, Content-Length,
// Content-Type, blank line and body.
func BuildGetResponse(status Status, body []byte) []byte {
	return buildResponse(status, body, true)
}

// BuildHeadResponse renders the same head as BuildGetResponse, including the
// Content-Length of body, without the body itself.
func BuildHeadResponse(status Status, body []byte) []byte {
	return buildResponse(status, body, false)
}

func buildResponse(status Status, body []byte, withBody bool) []byte {
	var b bytes.Buffer
	b.WriteString("HTTP/1.1 ")
	b.WriteString(string(status))
	b.WriteString("\r\nContent-Length: ")
	b.WriteString(strconv.Itoa(len(body)))
	b.WriteString("\r\nContent-Type: ")
	b.WriteString(mimetype.Detect(body).String())
	b.WriteString("\r\n\r\n")
	if withBody {
		b.Write(body)
	}
	return b.Bytes()
}
