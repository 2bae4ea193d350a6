package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
)

// maxBodyBytes caps request bodies; entity payloads are small.
const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

// decodeJSON reads the request body into dst, rejecting unparsable payloads.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		// Surface field validation failures so handlers report "invalid
		// amount"/"invalid date" instead of a generic decode message.
		if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrInvalidDate) {
			return err
		}
		return errMalformedBody
	}
	return nil
}

// pathID parses a numeric path value such as {id}.
func pathID(r *http.Request, name string) (int64, error) {
	v := r.PathValue(name)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return id, nil
}

// amountField decodes a monetary amount given either as a JSON string
// ("12.34") or a bare number (12.34), into cents.
type amountField struct {
	Cents int64
}

func (a *amountField) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	cents, err := core.ParseAmountToCents(s)
	if err != nil {
		return err
	}
	a.Cents = cents
	return nil
}

// dateField decodes a YYYY-MM-DD JSON string.
type dateField struct {
	core.Date
}

func (d *dateField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return core.ErrInvalidDate
	}
	parsed, err := core.ParseDate(s)
	if err != nil {
		return err
	}
	d.Date = parsed
	return nil
}
