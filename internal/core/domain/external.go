package domain

import "strconv"

// RawCurrency is one entry of a raw country's currencies list.
type RawCurrency struct {
	Code string `json:"code"`
}

// RawCountry is a country record as returned by the upstream country list
// source. Population is a pointer so a missing or null value (which makes the
// record invalid) is distinguishable from an explicit zero.
type RawCountry struct {
	Name       string        `json:"name"`
	Capital    string        `json:"capital"`
	Region     string        `json:"region"`
	Population *FlexFloat    `json:"population"`
	Flag       string        `json:"flag"`
	Currencies []RawCurrency `json:"currencies"`
}

// FlexFloat tolerates upstream records that encode a number as a quoted
// string; anything present but non-numeric coerces to zero.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}
