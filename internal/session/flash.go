// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// FlashCookieName identifies the browser's flash queue. It is separate
	// from the session cookie so anonymous visitors get flash messages too.
	FlashCookieName = "aw_flash"

	// flashKeyPrefix namespaces flash queues in Redis.
	flashKeyPrefix = "flash:"

	// flashTTL bounds how long an undelivered flash queue survives.
	flashTTL = time.Hour
)

// Flash is a one-time notification message classified by kind.
// Kind is one of "success", "error", "warning", "info".
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// AddFlash appends a one-time message to the visitor's flash queue.
// A flash cookie is created on first use.
func (s *Store) AddFlash(ctx context.Context, w http.ResponseWriter, r *http.Request, kind, message string) error {
	id := flashID(r)
	if id == "" {
		var err error
		id, err = generateID()
		if err != nil {
			return fmt.Errorf("flash id: %w", err)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     FlashCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
		// Make the queue visible to handlers running later in this request.
		r.AddCookie(&http.Cookie{Name: FlashCookieName, Value: id})
	}

	payload, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return fmt.Errorf("flash marshal: %w", err)
	}

	key := flashKeyPrefix + id
	if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("flash push: %w", err)
	}
	s.client.Expire(ctx, key, flashTTL)
	return nil
}

// PopFlashes drains and returns the visitor's pending flash messages.
// Returns an empty slice when there is nothing to show.
func (s *Store) PopFlashes(ctx context.Context, r *http.Request) ([]Flash, error) {
	id := flashID(r)
	if id == "" {
		return nil, nil
	}

	key := flashKeyPrefix + id
	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("flash range: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	s.client.Del(ctx, key)

	flashes := make([]Flash, 0, len(raw))
	for _, item := range raw {
		var f Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue // Skip corrupt entries rather than failing the page.
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

// flashID extracts the flash queue ID from the request cookie.
func flashID(r *http.Request) string {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
