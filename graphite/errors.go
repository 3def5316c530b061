package graphite

import "net/http"

type errStatusNotOK int

func (e errStatusNotOK) Error() string {
	return "non-2xx HTTP status code: " + http.StatusText(int(e))
}

type errInvalidResponse string

func (e errInvalidResponse) Error() string {
	return "invalid render response: " + string(e)
}
