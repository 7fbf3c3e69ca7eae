// Package clinicapi - HTTP-клиент JSON API клиники: календарь записей,
// свободные окна дентистов и одонтограммы пациентов.
package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// Config - параметры подключения к клинике
type Config struct {
	BaseURL    string
	CookieName string        // имя cookie сессии клиники
	Timeout    time.Duration // таймаут одного запроса
	RPS        float64       // ограничение запросов в секунду на весь процесс
	Location   *time.Location
}

// Client ходит в API клиники от имени одной сессии.
// HTTP-клиент и лимитер общие для всех копий, полученных через WithSession.
type Client struct {
	baseURL    *url.URL
	cookieName string
	session    string
	loc        *time.Location

	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New создает клиент без сессии
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid clinic api url %q", cfg.BaseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	limit := rate.Inf
	burst := 1
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
		burst = int(cfg.RPS)
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		baseURL:    base,
		cookieName: cfg.CookieName,
		loc:        loc,
		http: &http.Client{
			Timeout: cfg.Timeout,
			// Редирект означает страницу входа: сессия недействительна
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}, nil
}

// WithSession возвращает копию клиента, передающую cookie сессии как есть
func (c *Client) WithSession(cookie string) *Client {
	cp := *c
	cp.session = cookie
	return &cp
}

// Location - часовой пояс клиники
func (c *Client) Location() *time.Location {
	return c.loc
}

// URL строит абсолютную ссылку на страницу клиники
func (c *Client) URL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	} else {
		u.RawQuery = ""
	}
	return u.String()
}

// AppointmentEditURL - страница редактирования записи
func (c *Client) AppointmentEditURL(appointmentID int64) string {
	return c.URL(fmt.Sprintf("/panel/citas/%d/editar", appointmentID), url.Values{"from": {"dashboard"}})
}

// PatientURL - карточка пациента
func (c *Client) PatientURL(patientID int64) string {
	return c.URL(fmt.Sprintf("/panel/pacientes/%d", patientID), nil)
}

// do выполняет запрос и декодирует ответ в out.
// Тело ответа с ошибкой тоже разбирается: сервер кладет туда сообщение.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrTransport, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.session})
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Clinic API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Clinic API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(started)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode >= 300 && resp.StatusCode < 400:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		return c.decodeFailure(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrTransport, err)
	}
	return nil
}

func (c *Client) decodeFailure(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var result resultResponse
	if err := json.Unmarshal(raw, &result); err == nil && result.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: result.Error}
	}
	if resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return &APIError{Status: resp.StatusCode}
}

// checkResult превращает success=false в ошибку приложения
func checkResult(result resultResponse) error {
	if result.Success {
		return nil
	}
	return &APIError{Status: http.StatusOK, Message: result.Error}
}

// IsApplication сообщает что ошибка пришла от сервера клиники, а не из сети
func IsApplication(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
