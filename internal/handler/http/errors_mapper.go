package http

import (
	"net/http"

	"github.com/MKhiriev/go-diff-sync/internal/gateway"
)

var codeStatusMap = map[gateway.Code]int{
	gateway.CodeInvalidRPC:      http.StatusNotFound,
	gateway.CodeInvalidArgs:     http.StatusBadRequest,
	gateway.CodeInvalidRequest:  http.StatusBadRequest,
	gateway.CodeDatabaseNotOpen: http.StatusConflict,
	gateway.CodeNoHTTPClient:    http.StatusInternalServerError,
	gateway.CodeFetchFailed:     http.StatusBadGateway,
	gateway.CodeFetchNotOK:      http.StatusBadGateway,
	gateway.CodeInvalidResponse: http.StatusBadGateway,
	gateway.CodeStoreError:      http.StatusInternalServerError,
	gateway.CodeInternal:        http.StatusInternalServerError,
}

func statusFromCode(code gateway.Code) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
