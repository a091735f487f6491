package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/spf13/cast"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/models"
)

const dateLayout = "2006-01-02"

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid %s: must be a uuid", name)
	}
	return id, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	n, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, apperrors.Validation("invalid %s: must be an integer", name)
	}
	return n, nil
}

func queryPage(q url.Values) models.PageRequest {
	return models.PageRequest{
		Page: cast.ToInt(q.Get("page")),
		Size: cast.ToInt(q.Get("size")),
	}
}

// queryDate parses an optional "2006-01-02" query parameter.
func queryDate(q url.Values, name string) (*time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, apperrors.Validation("invalid %s: expected YYYY-MM-DD", name)
	}
	return &t, nil
}

func queryBool(q url.Values, name string) (*bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.Validation("invalid %s: expected true or false", name)
	}
	return &b, nil
}

func queryInt(q url.Values, name string) (*int, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.Validation("invalid %s: expected an integer", name)
	}
	return &n, nil
}

func queryUUID(q url.Values, name string) (*uuid.UUID, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.Validation("invalid %s: must be a uuid", name)
	}
	return &id, nil
}
