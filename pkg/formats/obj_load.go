package formats

import (
	"os"

	"github.com/pkg/errors"
)

// LoadOBJ reads and parses an OBJ file. Read failures are returned wrapped
// (errors.Is(err, fs.ErrNotExist) still works); parse failures are returned
// as *ParseError.
func LoadOBJ(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return ParseOBJ(data)
}
