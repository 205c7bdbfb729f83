// Package client talks to a bookstock server over HTTP. Inventory errors
// come back as the same sentinels the inventory package returns, so callers
// can use errors.Is on either side of the wire.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"BookStock/internal/auth"
	"BookStock/internal/wire"
	"BookStock/pkg/kit"
)

var (
	ErrUnavailable  = errors.New("bookstock unavailable")
	ErrBadStatus    = errors.New("bookstock bad status")
	ErrUnauthorized = errors.New("unauthorized")
)

const defaultTimeout = 3 * time.Second

type base struct {
	BaseURL string
	Client  *http.Client
	Token   string
}

func newBase(baseURL string) base {
	return base{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: defaultTimeout},
	}
}

// do sends body as JSON and decodes a 2xx answer into out when out is
// non-nil.
func (b base) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u := b.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.Token != "" {
		req.Header.Set("Authorization", "Bearer "+b.Token)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return decodeError(resp)
}

func decodeError(resp *http.Response) error {
	var er kit.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, kit.MaxBodyBytes)).Decode(&er); err != nil {
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	if sentinel := wire.ErrorForCode(er.Code); sentinel != nil {
		// Server messages already start with the sentinel text.
		msg := strings.TrimPrefix(er.Error, sentinel.Error())
		msg = strings.TrimPrefix(msg, ": ")
		if msg == "" {
			return sentinel
		}
		return fmt.Errorf("%w: %s", sentinel, msg)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, er.Error)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, er.Error)
	}
	return fmt.Errorf("%w: status=%d code=%s", ErrBadStatus, resp.StatusCode, er.Code)
}

func isbnQuery(isbns []int) url.Values {
	if len(isbns) == 0 {
		return nil
	}
	q := url.Values{}
	for _, isbn := range isbns {
		q.Add("isbn", strconv.Itoa(isbn))
	}
	return q
}

func countQuery(n int) url.Values {
	return url.Values{"n": []string{strconv.Itoa(n)}}
}

// Login exchanges operator credentials for an access token.
func Login(ctx context.Context, baseURL, email, password string) (string, error) {
	b := newBase(baseURL)

	var resp auth.LoginResp
	err := b.do(ctx, http.MethodPost, "/auth/login", nil,
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}
