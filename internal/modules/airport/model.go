// README: Airport directory records.
package airport

import "errors"

// Code is an IATA airport identifier such as "CDG".
type Code string

// Airport is one row of the static directory.
type Airport struct {
	Code    Code
	Name    string
	City    string
	Country string
}

var ErrEmptyDirectory = errors.New("airport directory is empty")
