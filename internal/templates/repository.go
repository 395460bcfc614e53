package templates

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/formatdiff/pkg/docx"
	"github.com/JaimeStill/formatdiff/pkg/pagination"
	"github.com/JaimeStill/formatdiff/pkg/query"
	"github.com/JaimeStill/formatdiff/pkg/repository"
	"github.com/JaimeStill/formatdiff/pkg/storage"
)

const returning = "RETURNING id, name, filename, size_bytes, checksum, storage_key, is_default, created_at, updated_at"

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a template repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "templates"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Template], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count templates: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTemplate)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Template, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTemplate)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) FindDefault(ctx context.Context) (*Template, error) {
	q, args := query.
		NewBuilder(
			projection,
			query.SortField{Field: "IsDefault", Descending: true},
			defaultSort,
		).
		BuildFirst()

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTemplate)
	if err != nil {
		return nil, repository.MapError(err, ErrNoDefault, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Template, error) {
	if !docx.IsDocx(cmd.Filename) || len(cmd.Data) == 0 {
		return nil, ErrInvalidFile
	}
	if _, err := docx.Parse(cmd.Filename, cmd.Data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(cmd.Filename), filepath.Ext(cmd.Filename))
	}

	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), docx.ContentType); err != nil {
		return nil, fmt.Errorf("upload template blob: %w", err)
	}

	insert := `
		INSERT INTO templates(id, name, filename, size_bytes, checksum, storage_key, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		` + returning

	insertArgs := []any{
		id,
		name,
		filepath.Base(cmd.Filename),
		int64(len(cmd.Data)),
		docx.Checksum(cmd.Data),
		key,
		cmd.IsDefault,
	}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Template, error) {
		if cmd.IsDefault {
			if err := clearDefault(ctx, tx); err != nil {
				return Template{}, err
			}
		}
		return repository.QueryOne(ctx, tx, insert, insertArgs, scanTemplate)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("template created", "id", t.ID, "name", t.Name, "default", t.IsDefault)
	return &t, nil
}

func (r *repo) Rename(ctx context.Context, id uuid.UUID, name string) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	q := `
		UPDATE templates SET name = $2, updated_at = NOW()
		WHERE id = $1
		` + returning

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Template, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, name}, scanTemplate)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("template renamed", "id", id, "name", name)
	return &t, nil
}

func (r *repo) SetDefault(ctx context.Context, id uuid.UUID) (*Template, error) {
	q := `
		UPDATE templates SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1
		` + returning

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Template, error) {
		if err := clearDefault(ctx, tx); err != nil {
			return Template{}, err
		}
		return repository.QueryOne(ctx, tx, q, []any{id}, scanTemplate)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("default template set", "id", id)
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	err = repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM templates WHERE id = $1",
			id,
		); err != nil {
			return err
		}

		if !t.IsDefault {
			return nil
		}

		promoted, err := promoteLatest(ctx, tx)
		if err != nil {
			return err
		}
		if !promoted {
			r.logger.Info("last template deleted, no default remains")
		}
		return nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, t.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", t.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("template deleted", "id", id)
	return nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Template, io.ReadCloser, error) {
	t, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	body, err := r.storage.Download(ctx, t.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: file missing from storage", ErrNotFound)
		}
		return nil, nil, fmt.Errorf("download template blob: %w", err)
	}

	return t, body, nil
}

func clearDefault(ctx context.Context, tx *sql.Tx) error {
	_, err := repository.Exec(
		ctx, tx,
		"UPDATE templates SET is_default = FALSE, updated_at = NOW() WHERE is_default",
	)
	return err
}

// promoteLatest flags the most recently created template as default and
// reports whether any template remained to promote.
func promoteLatest(ctx context.Context, tx *sql.Tx) (bool, error) {
	n, err := repository.Exec(ctx, tx, `
		UPDATE templates SET is_default = TRUE, updated_at = NOW()
		WHERE id = (SELECT id FROM templates ORDER BY created_at DESC LIMIT 1)`,
	)
	return n > 0, err
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("templates/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" || name == "/" {
		name = "template.docx"
	}
	return url.PathEscape(name)
}
