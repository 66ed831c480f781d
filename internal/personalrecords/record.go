package personalrecords

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrMissingField = errors.New("missing field")

// PRTypeOption identifies a personal record category.
// Legacy servers list bare strings, which decode into an option with an empty Exercise.
type PRTypeOption struct {
	PR       string `json:"pr"`
	Exercise string `json:"exercise"`
}

func (o *PRTypeOption) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var pr string
		if err := json.Unmarshal(data, &pr); err != nil {
			return err
		}
		*o = PRTypeOption{PR: pr}
		return nil
	}

	var raw struct {
		PR       *string `json:"pr"`
		Exercise *string `json:"exercise"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.PR == nil {
		return fmt.Errorf("pr type option: %w: pr", ErrMissingField)
	}

	o.PR = *raw.PR
	o.Exercise = ""
	if raw.Exercise != nil {
		o.Exercise = *raw.Exercise
	}
	return nil
}

// Value encodes both fields into a single select value.
// Each part is path escaped, so the "/" delimiter never appears inside a part.
func (o PRTypeOption) Value() string {
	if o.Exercise == "" {
		return url.PathEscape(o.PR)
	}
	return url.PathEscape(o.PR) + "/" + url.PathEscape(o.Exercise)
}

func (o PRTypeOption) Label() string {
	if o.Exercise == "" {
		return o.PR
	}
	return fmt.Sprintf("%s - %s", o.PR, o.Exercise)
}

// DecodePRTypeValue is the inverse of PRTypeOption.Value.
func DecodePRTypeValue(value string) (PRTypeOption, error) {
	prPart, exercisePart, _ := strings.Cut(value, "/")
	pr, err := url.PathUnescape(prPart)
	if err != nil {
		return PRTypeOption{}, fmt.Errorf("decode pr: %w", err)
	}
	exercise, err := url.PathUnescape(exercisePart)
	if err != nil {
		return PRTypeOption{}, fmt.Errorf("decode exercise: %w", err)
	}
	if pr == "" {
		return PRTypeOption{}, fmt.Errorf("decode pr type value: %w: pr", ErrMissingField)
	}
	return PRTypeOption{PR: pr, Exercise: exercise}, nil
}

type ActivityOption string

type Exercise struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Entry is one historical data point of a personal record.
type Entry struct {
	Date        string   `json:"date"`
	Quantity    float64  `json:"quantity"`
	Time        *float64 `json:"time,omitempty"`
	AddedWeight float64  `json:"added_weight"`
	Weight      float64  `json:"weight"`
	Bodyweight  float64  `json:"bodyweight"`
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date        *string         `json:"date"`
		Quantity    *float64        `json:"quantity"`
		Time        json.RawMessage `json:"time"`
		AddedWeight *float64        `json:"added_weight"`
		Weight      *float64        `json:"weight"`
		Bodyweight  *float64        `json:"bodyweight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var missing []string
	if raw.Date == nil {
		missing = append(missing, "date")
	}
	if raw.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if raw.AddedWeight == nil {
		missing = append(missing, "added_weight")
	}
	if raw.Weight == nil {
		missing = append(missing, "weight")
	}
	if raw.Bodyweight == nil {
		missing = append(missing, "bodyweight")
	}
	if len(missing) > 0 {
		return fmt.Errorf("personal record entry: %w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	recordTime, err := parseTime(raw.Time)
	if err != nil {
		return fmt.Errorf("personal record entry: %w", err)
	}

	*e = Entry{
		Date:        *raw.Date,
		Quantity:    *raw.Quantity,
		Time:        recordTime,
		AddedWeight: *raw.AddedWeight,
		Weight:      *raw.Weight,
		Bodyweight:  *raw.Bodyweight,
	}
	return nil
}

// the backend stores time as text, so numeric strings are accepted as well
func parseTime(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("time: not a number: %s", raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("time: not a number: %q", s)
	}
	return &n, nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

func (r LoginResponse) Validate() error {
	if r.Token == "" {
		return fmt.Errorf("login response: %w: token", ErrMissingField)
	}
	return nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type NewRecordRequest struct {
	ExoID       int    `json:"exo_id"`
	PR          string `json:"pr"`
	Quantity    int    `json:"quantity"`
	Time        int    `json:"time"`
	Date        string `json:"date"`
	AddedWeight int    `json:"added_weight"`
	Weight      int    `json:"weight"`
}
