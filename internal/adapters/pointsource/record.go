package pointsource

import (
	"bytes"
	"cyber-map-service/internal/domain"
	"encoding/json"
	"fmt"
	"strconv"
)

// PointRecord is one element of the upstream JSON array.
//
// The known fields are lifted into the domain Point; everything else
// (printers, opening hours, ...) lands in Extra and is passed through as
// metadata. Coordinates are not validated.
type PointRecord struct {
	ID        string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	Extra     map[string]any
}

func (r *PointRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out PointRecord
	var err error

	if out.ID, err = flexibleString(raw["id"]); err != nil {
		return fmt.Errorf("field id: %w", err)
	}
	if out.Name, err = flexibleString(raw["name"]); err != nil {
		return fmt.Errorf("field name: %w", err)
	}
	if out.Address, err = flexibleString(raw["address"]); err != nil {
		return fmt.Errorf("field address: %w", err)
	}
	if out.Latitude, err = flexibleFloat(raw["latitude"]); err != nil {
		return fmt.Errorf("field latitude: %w", err)
	}
	if out.Longitude, err = flexibleFloat(raw["longitude"]); err != nil {
		return fmt.Errorf("field longitude: %w", err)
	}

	out.Extra = make(map[string]any)
	for k, v := range raw {
		switch k {
		case "id", "name", "address", "latitude", "longitude":
			continue
		}

		var val any
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		out.Extra[k] = val
	}

	*r = out
	return nil
}

func (r PointRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Extra)+5)
	for k, v := range r.Extra {
		m[k] = v
	}
	m["id"] = r.ID
	m["name"] = r.Name
	m["address"] = r.Address
	m["latitude"] = r.Latitude
	m["longitude"] = r.Longitude
	return json.Marshal(m)
}

func (r PointRecord) ToDomain() domain.Point {
	return domain.Point{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		Coordinates: domain.Coordinates{Lat: r.Latitude, Lon: r.Longitude},
		Metadata:    r.Extra,
	}
}

// Accept both "7" and 7 for identifier-like fields; null or absent is "".
func flexibleString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", string(raw))
	}
	return n.String(), nil
}

// Accept 41.3 and "41.3"; absent or null is 0.
func flexibleFloat(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("expected number, got %s", string(raw))
	}
	return strconv.ParseFloat(s, 64)
}
