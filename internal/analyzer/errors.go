package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sozercan/listing-lens/internal/backend"
)

// User-facing messages.
const (
	MsgEmptyQuery = "クエリを入力してください"
	MsgGeneric    = "API呼び出しでエラーが発生しました"
	MsgTimeout    = "API呼び出しがタイムアウトしました"
)

var ErrEmptyQuery = errors.New("query is empty")

// ValidateQuery trims q and rejects it when nothing is left.
func ValidateQuery(q string) (string, error) {
	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		return "", ErrEmptyQuery
	}
	return trimmed, nil
}

// Failure turns a dispatch error into the Failed state shown to the user.
// Server-provided messages win; everything else gets a fixed message.
func Failure(query string, err error) Failed {
	var statusErr *backend.StatusError
	switch {
	case errors.Is(err, ErrEmptyQuery):
		return Failed{Query: query, Kind: FailureValidation, Message: MsgEmptyQuery}
	case errors.As(err, &statusErr):
		msg := statusErr.Message
		if msg == "" {
			msg = fmt.Sprintf("request failed with status code %d", statusErr.StatusCode)
		}
		return Failed{Query: query, Kind: FailureServer, Message: msg}
	case errors.Is(err, backend.ErrTimeout):
		return Failed{Query: query, Kind: FailureTimeout, Message: MsgTimeout}
	case errors.Is(err, backend.ErrDecode):
		return Failed{Query: query, Kind: FailureServer, Message: MsgGeneric}
	default:
		return Failed{Query: query, Kind: FailureTransport, Message: MsgGeneric}
	}
}
