// Package structured adapts a board of the relational backend to the catalog source contract.
//
// The whole board is served as a single native page ordered newest first.
package structured

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/constant"
	"github.com/ghie29/avmango/log"
	"github.com/ghie29/avmango/util"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

const columns = `CAST(v.id AS TEXT), v.title, v.slug, v.code, v.thumbnail, CAST(v.views AS TEXT), v.video_url, v.hls_url, v.description`

// Source serves one board.
type Source struct {
	db     *sql.DB
	driver string
	board  category.Structured
}

var _ catalog.Source = (*Source)(nil)

// New binds a board descriptor to an open database.
func New(db *sql.DB, driver string, board category.Structured) *Source {
	return &Source{db: db, driver: driver, board: board}
}

func (s *Source) Slug() string       { return s.board.Name() }
func (s *Source) Label() string      { return s.board.Title() }
func (s *Source) Kind() catalog.Kind { return catalog.KindStructured }

// BoardID resolves the board slug to its row id.
func (s *Source) BoardID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, s.q(`SELECT CAST(id AS TEXT) FROM boards WHERE slug = ?`), s.board.Slug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", s.unavailable(fmt.Errorf("board %q does not exist", s.board.Slug))
	}
	if err != nil {
		return "", s.unavailable(fmt.Errorf("board %q: %w", s.board.Slug, err))
	}
	return id, nil
}

// ListPage returns the whole board as page 1. Later pages are empty.
func (s *Source) ListPage(ctx context.Context, page int) (*catalog.Page, error) {
	if page > 1 {
		return &catalog.Page{Number: page, TotalPages: 1}, nil
	}

	rows, err := s.list(ctx, 0)
	if err != nil {
		return nil, err
	}

	videos := lo.Map(rows, func(r row, _ int) catalog.Video { return r.video() })
	return &catalog.Page{
		Number:     1,
		Items:      videos,
		TotalPages: 1,
		PageSize:   len(videos),
	}, nil
}

// Latest returns the newest limit videos of the board.
func (s *Source) Latest(ctx context.Context, limit int) ([]catalog.Video, error) {
	if limit <= 0 {
		limit = constant.HomeLimit
	}

	rows, err := s.list(ctx, limit)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(r row, _ int) catalog.Video { return r.video() }), nil
}

func (s *Source) list(ctx context.Context, limit int) ([]row, error) {
	boardID, err := s.BoardID(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + columns + ` FROM videos v WHERE v.board_id = ? ORDER BY v.created_at DESC, v.id DESC`
	args := []any{boardID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return s.query(ctx, query, args...)
}

// Lookup tries the row id, then the slug, then the code.
func (s *Source) Lookup(ctx context.Context, id string) (*catalog.Playable, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, catalog.ErrNotFound
	}

	boardID, err := s.BoardID(ctx)
	if err != nil {
		return nil, err
	}

	for _, column := range []string{"CAST(v.id AS TEXT)", "v.slug", "v.code"} {
		rows, err := s.query(ctx,
			`SELECT `+columns+` FROM videos v WHERE v.board_id = ? AND `+column+` = ? ORDER BY v.created_at DESC LIMIT 1`,
			boardID, id,
		)
		if err != nil {
			return nil, err
		}

		if len(rows) > 0 {
			p := rows[0].playable()
			p.Category = s.Slug()
			return p, nil
		}
	}

	return nil, catalog.ErrNotFound
}

// Search matches titles case-insensitively.
func (s *Source) Search(ctx context.Context, term string) ([]catalog.Video, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []catalog.Video{}, nil
	}

	boardID, err := s.BoardID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx,
		`SELECT `+columns+` FROM videos v WHERE v.board_id = ? AND LOWER(v.title) LIKE LOWER(?) ESCAPE '\' ORDER BY v.created_at DESC, v.id DESC`,
		boardID, "%"+escapeLike(term)+"%",
	)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(r row, _ int) catalog.Video { return r.video() }), nil
}

// Related picks up to limit other videos of the board in random order.
func (s *Source) Related(ctx context.Context, current *catalog.Playable, limit int) ([]catalog.Video, error) {
	if limit <= 0 {
		return []catalog.Video{}, nil
	}

	boardID, err := s.BoardID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx,
		`SELECT `+columns+` FROM videos v WHERE v.board_id = ? ORDER BY RANDOM() LIMIT ?`,
		boardID, limit+1,
	)
	if err != nil {
		return nil, err
	}

	related := lo.FilterMap(rows, func(r row, _ int) (catalog.Video, bool) {
		v := r.video()
		return v, current == nil || v.ID != current.ID
	})

	return lo.Slice(related, 0, limit), nil
}

func (s *Source) query(ctx context.Context, query string, args ...any) ([]row, error) {
	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, s.unavailable(err)
	}
	defer util.Ignore(rows.Close)

	var out []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.title, &r.slug, &r.code, &r.thumbnail, &r.views, &r.videoURL, &r.hlsURL, &r.description); err != nil {
			return nil, s.unavailable(fmt.Errorf("scan: %w", err))
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, s.unavailable(err)
	}

	log.Debugf("structured %s: %d rows", s.Slug(), len(out))
	return out, nil
}

// q rewrites ? placeholders into the bind style of the driver.
func (s *Source) q(query string) string {
	return sqlx.Rebind(sqlx.BindType(s.driver), query)
}

func (s *Source) unavailable(err error) error {
	return catalog.Unavailable(s.Slug(), err)
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
