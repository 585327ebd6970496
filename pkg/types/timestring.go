package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	// TimeLayout канонический формат времени суток
	TimeLayout = "15:04:05"
	// ShortTimeLayout формат без секунд, принимается на входе
	ShortTimeLayout = "15:04"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString время суток без даты в формате HH:MM:SS
type TimeString string

// NewTimeString создает TimeString из time.Time (дата и зона игнорируются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeLayout))
}

// NewTimeStringFromString парсит строку в форматах HH:MM или HH:MM:SS
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := parse(s)
	if err != nil {
		return "", err
	}
	return NewTimeString(t), nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке. Только для констант и тестов.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func parse(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(ShortTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// String возвращает время в формате HH:MM:SS
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero возвращает true, если время не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет формат
func (ts TimeString) Validate() error {
	_, err := parse(string(ts))
	return err
}

// Seconds возвращает количество секунд от полуночи
func (ts TimeString) Seconds() int {
	t, err := parse(string(ts))
	if err != nil {
		return -1
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// IsBefore строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Seconds() < other.Seconds()
}

// Equal совпадает ли время суток
func (ts TimeString) Equal(other TimeString) bool {
	return ts.Seconds() == other.Seconds()
}

// On возвращает момент времени в указанную дату и зону
func (ts TimeString) On(date time.Time, loc *time.Location) time.Time {
	secs := ts.Seconds()
	if secs < 0 {
		secs = 0
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, secs/3600, (secs%3600)/60, secs%60, 0, loc)
}

// Value реализует driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner. lib/pq отдает TIME как time.Time с нулевой датой либо как текст.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	// TIME в Postgres может содержать дробные секунды
	if len(s) > len(TimeLayout) {
		s = s[:len(TimeLayout)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
