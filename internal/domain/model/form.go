package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type CountField string

const (
	FieldProduct CountField = "product"
	FieldTag     CountField = "tag"
	FieldOrder   CountField = "order"
)

var ErrInvalidCount = errors.New("must be a non-negative integer")

func ParseCountField(value string) (CountField, error) {
	switch CountField(strings.ToLower(strings.TrimSpace(value))) {
	case FieldProduct:
		return FieldProduct, nil
	case FieldTag:
		return FieldTag, nil
	case FieldOrder:
		return FieldOrder, nil
	}
	return "", fmt.Errorf("unknown count field %q", value)
}

func (f CountField) Label() string {
	switch f {
	case FieldProduct:
		return "Number of products"
	case FieldTag:
		return "Number of tags"
	case FieldOrder:
		return "Number of orders"
	}
	return string(f)
}

// CountError carries the field whose raw text was rejected.
type CountError struct {
	Field CountField
	Raw   string
}

func (e *CountError) Error() string {
	return fmt.Sprintf("%s %s", e.Field.Label(), ErrInvalidCount.Error())
}

func (e *CountError) Unwrap() error {
	return ErrInvalidCount
}

// FormState is owned by one mounted screen.
type FormState struct {
	DesiredProductCount int
	DesiredTagCount     int
	DesiredOrderCount   int
	CurrentShopID       string
	InputErrors         map[CountField]error
}

func NewFormState() FormState {
	return FormState{InputErrors: map[CountField]error{}}
}

// SetCount stores the parsed value of raw. Rejected text stores 0 and keeps
// the error until the field is set again with valid text.
func (s *FormState) SetCount(field CountField, raw string) error {
	if s.InputErrors == nil {
		s.InputErrors = map[CountField]error{}
	}
	value, err := ParseCount(raw)
	if err != nil {
		err = &CountError{Field: field, Raw: raw}
		s.InputErrors[field] = err
	} else {
		delete(s.InputErrors, field)
	}

	switch field {
	case FieldProduct:
		s.DesiredProductCount = value
	case FieldTag:
		s.DesiredTagCount = value
	case FieldOrder:
		s.DesiredOrderCount = value
	default:
		return fmt.Errorf("unknown count field %q", field)
	}
	return err
}

// Clone copies the state so it can be read off the owning goroutine.
func (s FormState) Clone() FormState {
	errs := make(map[CountField]error, len(s.InputErrors))
	for k, v := range s.InputErrors {
		errs[k] = v
	}
	s.InputErrors = errs
	return s
}

func (s FormState) Count(field CountField) int {
	switch field {
	case FieldProduct:
		return s.DesiredProductCount
	case FieldTag:
		return s.DesiredTagCount
	case FieldOrder:
		return s.DesiredOrderCount
	}
	return 0
}

// FirstInputError returns the first input error among fields, in order.
func (s FormState) FirstInputError(fields ...CountField) error {
	for _, f := range fields {
		if err, ok := s.InputErrors[f]; ok && err != nil {
			return err
		}
	}
	return nil
}

// ParseCount accepts empty text as 0 and clamps to the GraphQL Int range.
func ParseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return math.MaxInt32, nil
		}
		return 0, ErrInvalidCount
	}
	if value < 0 {
		return 0, ErrInvalidCount
	}
	if value > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(value), nil
}
