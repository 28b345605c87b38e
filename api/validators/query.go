package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wildwestwallart/storefront-backend/pkg/enums"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryFinish reads an optional finish parameter. Absent means no
// constraint; anything unrecognized is rejected.
func ParseQueryFinish(r *http.Request, key string) (enums.Finish, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", nil
	}
	finish, ok := enums.ParseFinish(raw)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown finish").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return finish, nil
}

// ParseQuerySort validates the sort parameter against the allowed orders.
func ParseQuerySort(r *http.Request, key string, allowed []string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", nil
	}
	for _, candidate := range allowed {
		if raw == candidate {
			return raw, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown sort order").WithDetails(map[string]any{"field": key, "value": raw})
}
