// README: Static airport directory and city-name resolution.
package airport

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

//go:embed data/airports.csv
var embeddedCSV []byte

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)

// Directory resolves free-text city names against a fixed list of airports.
// Lookups walk the list in order, so the first airport listed for a city wins.
type Directory struct {
	airports []Airport
	byCode   map[Code]Airport
}

// NewDirectory builds a Directory over airports, keeping their order.
func NewDirectory(airports []Airport) *Directory {
	byCode := make(map[Code]Airport, len(airports))
	for _, a := range airports {
		byCode[a.Code] = a
	}
	return &Directory{airports: airports, byCode: byCode}
}

// Embedded returns the directory compiled into the binary.
func Embedded() (*Directory, error) {
	airports, err := ParseCSV(bytes.NewReader(embeddedCSV))
	if err != nil {
		return nil, err
	}
	return NewDirectory(airports), nil
}

// ParseCSV reads airport rows. Columns are located by header name: "code" or
// "iata", then "name", "city" and "country". Rows without a code are skipped,
// which lets airportsdata-style dumps with ICAO-only entries load as is.
func ParseCSV(r io.Reader) ([]Airport, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read airports csv: %w", err)
	}
	if len(rows) <= 1 {
		return nil, ErrEmptyDirectory
	}
	cols, err := headerColumns(rows[0])
	if err != nil {
		return nil, err
	}
	airports := make([]Airport, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < len(rows[0]) {
			return nil, fmt.Errorf("airports csv row %d: expected %d columns, got %d", i+2, len(rows[0]), len(row))
		}
		code := strings.ToUpper(strings.TrimSpace(row[cols.code]))
		if code == "" {
			continue
		}
		airports = append(airports, Airport{
			Code:    Code(code),
			Name:    strings.TrimSpace(row[cols.name]),
			City:    strings.TrimSpace(row[cols.city]),
			Country: strings.TrimSpace(row[cols.country]),
		})
	}
	if len(airports) == 0 {
		return nil, ErrEmptyDirectory
	}
	return airports, nil
}

// LoadFile parses an airports CSV from disk.
func LoadFile(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open airports file: %w", err)
	}
	defer f.Close()
	airports, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewDirectory(airports), nil
}

type columns struct {
	code, name, city, country int
}

func headerColumns(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	code, ok := idx["code"]
	if !ok {
		code, ok = idx["iata"]
	}
	if !ok {
		return columns{}, fmt.Errorf("airports csv: no code or iata column")
	}
	c := columns{code: code}
	for name, dst := range map[string]*int{"name": &c.name, "city": &c.city, "country": &c.country} {
		i, ok := idx[name]
		if !ok {
			return columns{}, fmt.Errorf("airports csv: missing %s column", name)
		}
		*dst = i
	}
	return c, nil
}

// Normalize strips qualifiers from a place name: everything from the first
// hyphen on, then any "(...)" segment, then surrounding whitespace.
func Normalize(place string) string {
	if i := strings.Index(place, "-"); i >= 0 {
		place = place[:i]
	}
	place = parenthetical.ReplaceAllString(place, "")
	return strings.TrimSpace(place)
}

// Resolve returns the airport code for place. The bool is false when no
// airport serves that city; callers treat it as a skip, not an error.
func (d *Directory) Resolve(place string) (Code, bool) {
	name := Normalize(place)
	if name == "" {
		return "", false
	}
	for _, a := range d.airports {
		if strings.EqualFold(a.City, name) {
			return a.Code, true
		}
	}
	return "", false
}

// Lookup returns the directory entry for code.
func (d *Directory) Lookup(code Code) (Airport, bool) {
	a, ok := d.byCode[Code(strings.ToUpper(string(code)))]
	return a, ok
}

func (d *Directory) Len() int {
	return len(d.airports)
}

// All returns a copy of the entries in directory order.
func (d *Directory) All() []Airport {
	return append([]Airport(nil), d.airports...)
}
