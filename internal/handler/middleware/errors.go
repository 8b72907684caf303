package middleware

import "nest/internal/pkg/errs"

var (
	errMissingToken = errs.New("missing bearer token")
	errNoPrincipal  = errs.New("principal missing from context")
	errForbidden    = errs.New("role below requirement")
	errGateClosed   = errs.New("greenlight flag not set")
)
