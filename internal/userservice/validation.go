package userservice

import (
	"github.com/sushihentaime/blogapi/internal/common"
)

func validateRequired(v *common.Validator, value, name string) {
	v.Check(value != "", name, "must be provided")
}

// bcrypt ignores everything past 72 bytes, so longer passwords are rejected up front.
func validatePassword(v *common.Validator, password string) {
	validateRequired(v, password, "password")
	v.Check(len(password) <= 72, "password", "must not be more than 72 bytes long")
}
