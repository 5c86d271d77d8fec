package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	keyHomeworks   = "homeworks"
	keyCurrentDate = "current_date"
	keyName        = "homework_name"
	keyStatus      = "status"
)

const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

var verdicts = map[string]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Record is a single homework entry as served by the API.
type Record map[string]any

// Verdict returns the human-readable text for a known status.
func Verdict(status string) (string, bool) {
	v, ok := verdicts[status]
	return v, ok
}

// CheckResponse validates the response shape and returns the most recent homework.
// The second return value is false when the response holds no homeworks.
func CheckResponse(resp any) (Record, bool, error) {
	body, ok := resp.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%w: response is %T, expected object", ErrTypeMismatch, resp)
	}

	raw, ok := body[keyHomeworks]
	if !ok {
		return nil, false, fmt.Errorf("%w: key %q not found", ErrMissingData, keyHomeworks)
	}

	homeworks, ok := raw.([]any)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q is %T, expected array", ErrTypeMismatch, keyHomeworks, raw)
	}
	if len(homeworks) == 0 {
		return nil, false, nil
	}

	rec, ok := homeworks[0].(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%w: homework is %T, expected object", ErrTypeMismatch, homeworks[0])
	}

	return rec, true, nil
}

// CurrentDate returns the server-side response time when it is present and integral.
func CurrentDate(resp any) (int64, bool) {
	body, ok := resp.(map[string]any)
	if !ok {
		return 0, false
	}

	switch v := body[keyCurrentDate].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// ParseStatus builds the notification text for a homework record.
func ParseStatus(rec Record) (string, error) {
	name, err := rec.stringField(keyName)
	if err != nil {
		return "", err
	}
	status, err := rec.stringField(keyStatus)
	if err != nil {
		return "", err
	}

	verdict, ok := Verdict(status)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}

func (r Record) stringField(key string) (string, error) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%w: key %q not found in homework", ErrMissingData, key)
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, expected string", ErrTypeMismatch, key, raw)
	}
	return v, nil
}
