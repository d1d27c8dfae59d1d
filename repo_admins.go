package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type admins struct {
	repository.Repository[*Admin]
	db *bun.DB
}

var _ Admins = (*admins)(nil)

// NewAdminsRepository creates the bun backed credential store
func NewAdminsRepository(db *bun.DB) Admins {
	repo := repository.NewRepository[*Admin](db, repository.ModelHandlers[*Admin]{
		NewRecord: func() *Admin { return &Admin{} },
		GetID: func(a *Admin) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Admin, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
	})

	return &admins{
		Repository: repo,
		db:         db,
	}
}

func (a *admins) Create(ctx context.Context, record *Admin) (*Admin, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if _, err := a.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create admin record")
	}
	return record, nil
}

func (a *admins) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	record := &Admin{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load admin by id")
	}

	return record, nil
}

func (a *admins) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	record := &Admin{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load admin by username")
	}

	return record, nil
}
