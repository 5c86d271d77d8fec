package homework

import "errors"

var (
	// ErrAPI indicates the homework API is unreachable or answered with a non-200 status.
	ErrAPI = errors.New("homework api error")

	// ErrDecode indicates the API response body is not valid JSON.
	ErrDecode = errors.New("decode api response")

	// ErrTypeMismatch indicates the API response shape does not match the expected one.
	ErrTypeMismatch = errors.New("unexpected api response type")

	// ErrMissingData indicates an expected key is absent from the API response.
	ErrMissingData = errors.New("missing data in api response")

	// ErrInvalidStatus indicates a homework status outside of the known verdicts.
	ErrInvalidStatus = errors.New("unknown homework status")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindAPI
	KindDecode
	KindTypeMismatch
	KindMissingData
	KindInvalidStatus
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindDecode:
		return "decode"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindMissingData:
		return "missing_data"
	case KindInvalidStatus:
		return "invalid_status"
	default:
		return "unknown"
	}
}

// Class groups error kinds by the notification they produce.
type Class int

const (
	ClassAPI Class = iota
	ClassData
)

func (c Class) String() string {
	if c == ClassAPI {
		return "api"
	}
	return "data"
}

func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrAPI):
		return KindAPI
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrTypeMismatch):
		return KindTypeMismatch
	case errors.Is(err, ErrMissingData):
		return KindMissingData
	case errors.Is(err, ErrInvalidStatus):
		return KindInvalidStatus
	default:
		return KindUnknown
	}
}

// ClassOf reports ClassAPI for endpoint failures and ClassData for everything else.
func ClassOf(err error) Class {
	if KindOf(err) == KindAPI {
		return ClassAPI
	}
	return ClassData
}
