package blogservice

import (
	"github.com/google/uuid"
	"github.com/sushihentaime/blogapi/internal/common"
)

func validateRequired(v *common.Validator, value, name string) {
	v.Check(value != "", name, "must be provided")
}

// parseID returns ErrRecordNotFound for anything that is not a UUID, since no blog can have such an id.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrRecordNotFound
	}

	return parsed.String(), nil
}
