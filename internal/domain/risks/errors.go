package risks

import "errors"

var ErrRiskNotFound = errors.New("risk assessment not found")
