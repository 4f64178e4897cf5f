package server

import (
	"errors"

	"github.com/yurifrl/secstmt/pkg/errs"
)

func structured(err error) (errs.Error, bool) {
	var e errs.Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
