package http

// StatusClass is the semantic class of an HTTP status code.
type StatusClass int

const (
	StatusUnknown StatusClass = iota
	StatusInformational
	StatusSuccess
	StatusRedirection
	StatusClientError
	StatusServerError
)

// ClassifyStatus returns the class of a numeric status code
func ClassifyStatus(code int) StatusClass {
	switch {
	case code >= 100 && code < 200:
		return StatusInformational
	case code >= 200 && code < 300:
		return StatusSuccess
	case code >= 300 && code < 400:
		return StatusRedirection
	case code >= 400 && code < 500:
		return StatusClientError
	case code >= 500 && code < 600:
		return StatusServerError
	}
	return StatusUnknown
}

func (c StatusClass) String() string {
	switch c {
	case StatusInformational:
		return "informational"
	case StatusSuccess:
		return "success"
	case StatusRedirection:
		return "redirection"
	case StatusClientError:
		return "client error"
	case StatusServerError:
		return "server error"
	}
	return "unknown"
}
