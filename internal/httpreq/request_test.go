package httpreq_test

import (
	"bufio"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/tpserve/internal/httpreq"
	srvErrors "github.com/tupyy/tpserve/pkg/errors"
)

var _ = Describe("ParseMethod", func() {
	DescribeTable("known methods",
		func(s string, expected httpreq.Method) {
			m, err := httpreq.ParseMethod(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(expected))
		},
		Entry("GET", "GET", httpreq.MethodGet),
		Entry("HEAD", "HEAD", httpreq.MethodHead),
		Entry("POST", "POST", httpreq.MethodPost),
		Entry("PUT", "PUT", httpreq.MethodPut),
		Entry("DELETE", "DELETE", httpreq.MethodDelete),
		Entry("CONNECT", "CONNECT", httpreq.MethodConnect),
		Entry("OPTIONS", "OPTIONS", httpreq.MethodOptions),
		Entry("TRACE", "TRACE", httpreq.MethodTrace),
		Entry("PATCH", "PATCH", httpreq.MethodPatch),
	)

	It("should reject lower case and unknown methods", func() {
		for _, s := range []string{"get", "FETCH", ""} {
			_, err := httpreq.ParseMethod(s)
			Expect(srvErrors.IsUnsupportedMethodError(err)).To(BeTrue(), "method %q", s)
		}
	})
})

var _ = Describe("ParseRequestLine", func() {
	It("should parse a valid request line", func() {
		line, err := httpreq.ParseRequestLine("GET /index.html HTTP/1.1")
		Expect(err).NotTo(HaveOccurred())
		Expect(line.Method).To(Equal(httpreq.MethodGet))
		Expect(line.Target).To(Equal("/index.html"))
		Expect(line.Version).To(Equal("HTTP/1.1"))
	})

	DescribeTable("invalid request lines",
		func(line string, check func(error) bool) {
			_, err := httpreq.ParseRequestLine(line)
			Expect(err).To(HaveOccurred())
			Expect(check(err)).To(BeTrue(), err.Error())
		},
		Entry("too few parts", "GET /", srvErrors.IsMalformedRequestError),
		Entry("too many parts", "GET / HTTP/1.1 extra", srvErrors.IsMalformedRequestError),
		Entry("double space", "GET  / HTTP/1.1", srvErrors.IsMalformedRequestError),
		Entry("HTTP/1.0", "GET / HTTP/1.0", srvErrors.IsUnsupportedVersionError),
		Entry("HTTP/2", "GET / HTTP/2", srvErrors.IsUnsupportedVersionError),
		Entry("unknown method", "BREW / HTTP/1.1", srvErrors.IsUnsupportedMethodError),
	)
})

var _ = Describe("ReadRequest", func() {
	read := func(raw string) (*httpreq.Request, error) {
		return httpreq.ReadRequest(bufio.NewReader(strings.NewReader(raw)))
	}

	It("should read the head up to the blank line", func() {
		req, err := read("HEAD /a.txt?x=1 HTTP/1.1\r\nHost: localhost\r\nuser-agent: test\r\n\r\nbody")
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Method).To(Equal(httpreq.MethodHead))
		Expect(req.Target).To(Equal("/a.txt?x=1"))
		Expect(req.Path()).To(Equal("/a.txt"))
		Expect(req.Header).To(HaveKeyWithValue("Host", []string{"localhost"}))
		Expect(req.Header).To(HaveKeyWithValue("User-Agent", []string{"test"}))
	})

	It("should accept bare LF line endings", func() {
		req, err := read("GET / HTTP/1.1\nHost: x\n\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Target).To(Equal("/"))
	})

	It("should accept a head cut short by EOF", func() {
		req, err := read("GET / HTTP/1.1")
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Method).To(Equal(httpreq.MethodGet))
		Expect(req.Header).To(BeEmpty())
	})

	It("should reject an empty stream", func() {
		_, err := read("")
		Expect(srvErrors.IsMalformedRequestError(err)).To(BeTrue())
	})

	It("should reject an endless head", func() {
		raw := "GET / HTTP/1.1\r\n" + strings.Repeat("X-Filler: 1\r\n", 200) + "\r\n"
		_, err := read(raw)
		Expect(srvErrors.IsMalformedRequestError(err)).To(BeTrue())
	})

	It("should propagate request line errors", func() {
		_, err := read("GET / HTTP/1.0\r\n\r\n")
		Expect(srvErrors.IsUnsupportedVersionError(err)).To(BeTrue())
	})
})
