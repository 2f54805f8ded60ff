package http

import (
	nethttp "net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

func NewClient(timeout time.Duration) *nethttp.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := nethttp.DefaultTransport.(*nethttp.Transport).Clone()
	transport.MaxIdleConnsPerHost = 4
	transport.IdleConnTimeout = 90 * time.Second
	return &nethttp.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
