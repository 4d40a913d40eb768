package util

import (
	"fmt"
	"time"
)

// Datetime is the format to use anywhere we need to output a date+time to an user.
func Datetime(iface interface{}) string {
	return toTime(iface).UTC().Format("2006-01-02 15h04 MST")
}

// Date is the format to use anywhere we need to output a date to an user.
func Date(iface interface{}) string {
	return toTime(iface).UTC().Format("2006-01-02")
}

func toTime(iface interface{}) time.Time {
	switch iface := iface.(type) {
	case time.Time:
		return iface
	case TimeAsTimestamp:
		return iface.Time()
	case NullTimeAsTimestamp:
		return iface.Time.Time()
	default:
		panic(fmt.Errorf("unexpected type %T", iface))
	}
}

// ShortID returns the last n characters of an identifier, or the identifier
// itself if it is not longer than n.
func ShortID(id string, n int) string {
	r := []rune(id)
	if len(r) <= n {
		return id
	}

	return string(r[len(r)-n:])
}
