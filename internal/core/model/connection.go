package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownConnectionType is returned when a connection names a relationship
// other than SS, FF, FS or SF.
var ErrUnknownConnectionType = errors.New("unknown connection type")

// ConnectionType is the start/finish relationship of a dependency edge.
type ConnectionType int

const (
	StartToStart ConnectionType = iota
	FinishToFinish
	FinishToStart
	StartToFinish
)

var connectionTypeCodes = map[ConnectionType]string{
	StartToStart:   "SS",
	FinishToFinish: "FF",
	FinishToStart:  "FS",
	StartToFinish:  "SF",
}

// ConnectionTypes lists every relationship in routing order.
func ConnectionTypes() []ConnectionType {
	return []ConnectionType{StartToStart, FinishToFinish, FinishToStart, StartToFinish}
}

// ParseConnectionType parses the two-letter code (case-insensitive).
func ParseConnectionType(s string) (ConnectionType, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for ct, c := range connectionTypeCodes {
		if c == code {
			return ct, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownConnectionType, s)
}

func (ct ConnectionType) String() string {
	if code, ok := connectionTypeCodes[ct]; ok {
		return code
	}
	return fmt.Sprintf("ConnectionType(%d)", int(ct))
}

// Valid reports whether ct is one of the four known relationships.
func (ct ConnectionType) Valid() bool {
	_, ok := connectionTypeCodes[ct]
	return ok
}

func (ct ConnectionType) MarshalText() ([]byte, error) {
	if !ct.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownConnectionType, int(ct))
	}
	return []byte(ct.String()), nil
}

func (ct *ConnectionType) UnmarshalText(text []byte) error {
	parsed, err := ParseConnectionType(string(text))
	if err != nil {
		return err
	}
	*ct = parsed
	return nil
}

// Connection is a directed dependency edge attached to the task that owns it
// and naming the other task by id.
type Connection struct {
	To   string         `json:"to"`
	Type ConnectionType `json:"type"`
}
