package pointsource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPointFromOSM(t *testing.T) {
	p := pointFromOSM(42, 48.1, 11.5, map[string]string{
		"name":             "Netcafe",
		"amenity":          "internet_cafe",
		"addr:street":      "Hauptstr.",
		"addr:housenumber": "5",
		"addr:city":        "München",
	})

	assert.Equal(t, "osm/node/42", p.ID)
	assert.Equal(t, "Netcafe", p.Name)
	assert.Equal(t, "Hauptstr. 5, München", p.Address)
	assert.Equal(t, 48.1, p.Coordinates.Lat)
	assert.Equal(t, 11.5, p.Coordinates.Lon)
	assert.Equal(t, "internet_cafe", p.Metadata["amenity"])
	assert.NotContains(t, p.Metadata, "name")
}

func TestOSMAddress(t *testing.T) {
	data := []struct {
		tags map[string]string
		want string
	}{
		{map[string]string{"addr:full": "1 Main St, Springfield"}, "1 Main St, Springfield"},
		{map[string]string{"addr:city": "Lima"}, "Lima"},
		{map[string]string{"addr:street": "Jr. Union"}, "Jr. Union"},
		{map[string]string{}, ""},
	}
	for i, d := range data {
		assert.Equal(t, d.want, osmAddress(d.tags), "#%d", i)
	}
}

func TestNewOverpassPointSourceValidatesBBox(t *testing.T) {
	for _, bbox := range []string{"", "1,2,3", "a,b,c,d"} {
		_, err := NewOverpassPointSource("", bbox, time.Second)
		assert.Error(t, err, bbox)
	}

	_, err := NewOverpassPointSource("", "-34.7, -58.6, -34.5, -58.3", time.Second)
	assert.NoError(t, err)
}
