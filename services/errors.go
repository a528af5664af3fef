package services

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnprocessable = errors.New("unprocessable")
	ErrUnavailable   = errors.New("store unavailable")
)

// ClassifyStoreError wraps a raw store error with the sentinel that the HTTP
// layer understands. Errors it cannot classify are returned unchanged.
func ClassifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) || errors.Is(err, ErrUnprocessable) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		// 08: connection exception, 53: insufficient resources, 57P0x: operator intervention
		case strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "53"),
			strings.HasPrefix(pgErr.Code, "57P0"):
			return fmt.Errorf("%w: %s", ErrUnavailable, pgErr.Message)
		}
		return err
	}

	// Dial failures surface as *net.OpError underneath pgconn's connect error.
	var opErr *net.OpError
	if errors.As(err, &opErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return err
}
