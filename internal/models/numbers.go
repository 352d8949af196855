package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// looseNumber decodes a JSON number or a numeric string such as "50" or "$10".
// Values that are not numeric decode as zero so one odd field does not reject the whole record.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = looseNumber(f)
	return nil
}

func (n looseNumber) rounded() int {
	return int(math.Round(float64(n)))
}

// UnmarshalJSON accepts suggested_points as a string or a fractional number
func (h *HelpInteraction) UnmarshalJSON(data []byte) error {
	type plain HelpInteraction
	aux := struct {
		*plain
		SuggestedPoints looseNumber `json:"suggested_points"`
	}{plain: (*plain)(h)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	h.SuggestedPoints = aux.SuggestedPoints.rounded()
	return nil
}

// UnmarshalJSON accepts points and monetary_value as strings or numbers
func (r *SuggestedReward) UnmarshalJSON(data []byte) error {
	type plain SuggestedReward
	aux := struct {
		*plain
		Points        looseNumber `json:"points"`
		MonetaryValue looseNumber `json:"monetary_value"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Points = aux.Points.rounded()
	r.MonetaryValue = float64(aux.MonetaryValue)
	return nil
}

// UnmarshalJSON accepts amount as a string or a number
func (r *IdentifiedReward) UnmarshalJSON(data []byte) error {
	type plain IdentifiedReward
	aux := struct {
		*plain
		Amount looseNumber `json:"amount"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Amount = float64(aux.Amount)
	return nil
}
