package xhttp

const (
	AcceptEncoding  = "Accept-Encoding"
	ContentEncoding = "Content-Encoding"
	ContentLength   = "Content-Length"
	Vary            = "Vary"
)
