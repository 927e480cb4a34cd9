package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"time"

	"github.com/danielledeleo/createpage/wiki"
	"golang.org/x/sync/singleflight"
)

// EditorMode decides which editor edit links should open.
type EditorMode interface {
	UseRichEditor(ctx context.Context) bool
}

// StaticEditorMode is an EditorMode with a fixed answer.
type StaticEditorMode bool

// UseRichEditor implements EditorMode.
func (m StaticEditorMode) UseRichEditor(context.Context) bool {
	return bool(m)
}

// EditorSettings reads the use_rich_editor setting from the database on every
// call, so a change made with pagectl applies to the next request. Concurrent
// calls share one query.
type EditorSettings struct {
	db       *sql.DB
	fallback bool
	sf       *singleflight.Group
}

// NewEditorSettings creates an EditorSettings. fallback is used when the
// setting cannot be read.
func NewEditorSettings(db *sql.DB, fallback bool) *EditorSettings {
	return &EditorSettings{db: db, fallback: fallback, sf: &singleflight.Group{}}
}

// settingReadTimeout bounds the shared setting query, which does not follow
// any single caller's cancellation.
const settingReadTimeout = 2 * time.Second

// UseRichEditor implements EditorMode. A caller whose ctx ends first gets the
// fallback; callers sharing the same query are unaffected.
func (s *EditorSettings) UseRichEditor(ctx context.Context) bool {
	ch := s.sf.DoChan(wiki.SettingUseRichEditor, func() (interface{}, error) {
		queryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settingReadTimeout)
		defer cancel()
		return wiki.GetSetting(queryCtx, s.db, wiki.SettingUseRichEditor)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		slog.Warn("editor setting read abandoned, using default", "key", wiki.SettingUseRichEditor, "default", s.fallback, "error", ctx.Err())
		return s.fallback
	}
	if res.Err != nil {
		slog.Warn("failed to read editor setting, using default", "key", wiki.SettingUseRichEditor, "default", s.fallback, "error", res.Err)
		return s.fallback
	}
	value := res.Val.(string)
	rich, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid editor setting, using default", "key", wiki.SettingUseRichEditor, "value", value, "default", s.fallback)
		return s.fallback
	}
	return rich
}
