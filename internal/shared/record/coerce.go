package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// number matches json.Number without tying this package to a JSON library.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// dateLayouts are tried in order by ParseDate for string inputs.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
}

// ParseDate converts a provider date label into a calendar date at midnight UTC.
//
// Accepted shapes:
//   - time.Time / *time.Time (the date is taken in the value's own location)
//   - strings in one of dateLayouts
//   - unix seconds as integers, integral floats or json numbers
//
// Anything else fails with ErrUnsupportedDate.
func ParseDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, fmt.Errorf("%w: zero time", ErrUnsupportedDate)
		}
		return truncateDate(t), nil
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, fmt.Errorf("%w: nil time", ErrUnsupportedDate)
		}
		return truncateDate(*t), nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return truncateDate(ts), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedDate, t)
	case int, int32, int64, uint32, uint64, float64, number:
		secs, err := ToInt(t)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrUnsupportedDate, v)
		}
		return truncateDate(time.Unix(secs, 0).UTC()), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %T", ErrUnsupportedDate, v)
	}
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToFloat converts numeric values and numeric strings to float64.
func ToFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case number:
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q to float", ErrCoercion, t.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q to float", ErrCoercion, t)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %T to float", ErrCoercion, v)
}

// ToInt converts integers, integral floats and integer strings to int64.
func ToInt(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrCoercion, t)
		}
		return int64(t), nil
	case float32:
		return integral(float64(t))
	case float64:
		return integral(t)
	case number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q to int", ErrCoercion, t.String())
		}
		return integral(f)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q to int", ErrCoercion, t)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %T to int", ErrCoercion, v)
}

func integral(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v is not integral", ErrCoercion, f)
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v overflows int64", ErrCoercion, f)
	}
	return int64(f), nil
}

// ToBool converts booleans, 0/1 numbers and boolean strings.
func ToBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, fmt.Errorf("%w: %q to bool", ErrCoercion, t)
		}
		return b, nil
	}
	n, err := ToInt(v)
	if err != nil || (n != 0 && n != 1) {
		return false, fmt.Errorf("%w: %v to bool", ErrCoercion, v)
	}
	return n == 1, nil
}

// ToString converts scalars to their textual form.
func ToString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case number:
		return t.String(), nil
	case fmt.Stringer:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int, int32, int64, uint32, uint64:
		return fmt.Sprintf("%d", t), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: %T to string", ErrCoercion, v)
}

// Scalar normalizes JSON numbers to int64 when integral and float64
// otherwise. Other values are returned unchanged.
func Scalar(v any) any {
	n, ok := v.(number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
