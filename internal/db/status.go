package db

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// GameStatus codes match the integers stored by earlier deployments.
type GameStatus int

const (
	GameCompleted  GameStatus = 0
	GameInProgress GameStatus = 1
)

func (s GameStatus) String() string {
	switch s {
	case GameInProgress:
		return "IN_PROGRESS"
	case GameCompleted:
		return "COMPLETED"
	default:
		return "GameStatus(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s GameStatus) Valid() bool {
	switch s {
	case GameInProgress, GameCompleted:
		return true
	default:
		return false
	}
}

func (s *GameStatus) Scan(value any) error {
	code, err := scanStatusCode(value)
	if err != nil {
		return fmt.Errorf("game status: %w", err)
	}
	status := GameStatus(code)
	if !status.Valid() {
		return fmt.Errorf("game status: unknown code %d", code)
	}
	*s = status
	return nil
}

func (s GameStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("game status: unknown code %d", int(s))
	}
	return int64(s), nil
}

type RoundStatus int

const (
	RoundPending  RoundStatus = 0
	RoundAnswered RoundStatus = 1
)

func (s RoundStatus) String() string {
	switch s {
	case RoundPending:
		return "PENDING"
	case RoundAnswered:
		return "ANSWERED"
	default:
		return "RoundStatus(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s RoundStatus) Valid() bool {
	switch s {
	case RoundPending, RoundAnswered:
		return true
	default:
		return false
	}
}

func (s *RoundStatus) Scan(value any) error {
	code, err := scanStatusCode(value)
	if err != nil {
		return fmt.Errorf("round status: %w", err)
	}
	status := RoundStatus(code)
	if !status.Valid() {
		return fmt.Errorf("round status: unknown code %d", code)
	}
	*s = status
	return nil
}

func (s RoundStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("round status: unknown code %d", int(s))
	}
	return int64(s), nil
}

func scanStatusCode(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	case nil:
		return 0, fmt.Errorf("null status")
	default:
		return 0, fmt.Errorf("unsupported column type %T", value)
	}
}
