package sentry

import (
	"errors"
	"testing"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSentry_Builder(t *testing.T) {
	c := echo.New().NewContext(nil, nil)
	err := errors.New("director lookup failed")
	extras := map[string]interface{}{"movie_id": 42}
	tags := map[string]string{"route": "/api/movies"}

	s := new(Sentry)
	got := s.WithContext(c).
		WithError(err).
		WithMessage("create movie").
		WithLevel(sentrygo.LevelWarning).
		WithExtras(extras).
		WithTags(tags)

	assert.Same(t, s, got, "should chain on the same instance")
	assert.Equal(t, c, got.context)
	assert.Equal(t, err, got.error)
	assert.Equal(t, "create movie", got.message)
	assert.Equal(t, sentrygo.LevelWarning, got.level)
	assert.Equal(t, extras, got.extras)
	assert.Equal(t, tags, got.tags)
}

func TestSentry_Disabled(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		dsn      string
		disabled bool
	}{
		{name: "local environment", env: "local", dsn: "https://public@sentry.example.com/1", disabled: true},
		{name: "missing dsn", env: "production", dsn: "", disabled: true},
		{name: "production with dsn", env: "production", dsn: "https://public@sentry.example.com/1", disabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("SENTRY_DSN", tt.dsn)

			assert.Equal(t, tt.disabled, new(Sentry).disabled())
		})
	}
}

func TestSentry_Send(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")
	assert.NoError(t, sentrygo.Init(sentrygo.ClientOptions{Dsn: "https://public@sentry.example.com/1"}))
	defer sentrygo.Flush(0)

	t.Run("should capture an error with scope data", func(t *testing.T) {
		WithTags(map[string]string{"env": "test"}).
			WithExtras(map[string]interface{}{"take": 5}).
			WithError(errors.New("query failed")).
			WithLevel(sentrygo.LevelError).
			sendError()
	})

	t.Run("should capture a message", func(t *testing.T) {
		new(Sentry).WithMessage("cache miss storm").WithLevel(sentrygo.LevelInfo).sendMessage()
	})

	t.Run("should skip an error event without error", func(t *testing.T) {
		new(Sentry).WithLevel(sentrygo.LevelError).sendError()
	})
}

func TestSentry_LevelHelpers(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	original := FlushTime
	FlushTime = 0
	defer func() { FlushTime = original }()

	t.Run("methods set the level they report with", func(t *testing.T) {
		s := new(Sentry)
		s.Warning("movie cache invalidation failed")
		assert.Equal(t, sentrygo.LevelWarning, s.level)
		assert.Equal(t, "movie cache invalidation failed", s.message)
		s.Error(errors.New("query failed"))
		assert.Equal(t, sentrygo.LevelError, s.level)
		assert.EqualError(t, s.error, "query failed")
		s.Fatal(errors.New("listen failed"))
		assert.Equal(t, sentrygo.LevelFatal, s.level)
	})

	t.Run("package helper does not panic", func(t *testing.T) {
		Fatal(errors.New("listen failed"))
	})
}

func TestSentry_GetHub(t *testing.T) {
	t.Run("falls back to the current hub", func(t *testing.T) {
		assert.Equal(t, sentrygo.CurrentHub(), new(Sentry).getHub())
	})

	t.Run("uses the hub stored on the request", func(t *testing.T) {
		c := echo.New().NewContext(nil, nil)
		hub := sentrygo.CurrentHub().Clone()
		c.Set("sentry", hub)

		assert.Same(t, hub, WithContext(c).getHub())
	})
}

func TestSentry_ConfigScope(t *testing.T) {
	s := new(Sentry).
		WithLevel(sentrygo.LevelError).
		WithExtras(map[string]interface{}{"key": "value"}).
		WithTags(map[string]string{"env": "test"})

	scope := sentrygo.NewScope()
	s.configScope(scope)

	event := scope.ApplyToEvent(sentrygo.NewEvent(), nil)
	assert.Equal(t, sentrygo.LevelError, event.Level)
	assert.Equal(t, "test", event.Tags["env"])
	assert.Equal(t, "value", event.Extra["key"])
}
