package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/billing/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Billing interface {
	Insert(ctx context.Context, model model.BillingRecord) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.BillingRecord) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BillingRecord, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BillingRecord, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	HasNoShowBill(ctx context.Context, reservationID string) (bool, error)
	HasPaidBill(ctx context.Context, reservationID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.BillingRecord]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Billing {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BillingRecord](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// HasNoShowBill reports whether the reservation already carries its
// auto-generated no-show bill. The nightly run keys idempotency on
// this.
func (r *repositoryImpl) HasNoShowBill(ctx context.Context, reservationID string) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationID,
				Value:    reservationID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldIsNoShowBill,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return r.Exist(ctx, filter)
}

// HasPaidBill reports whether any settled statement exists for the
// reservation. Cancellation is blocked once money has changed hands.
func (r *repositoryImpl) HasPaidBill(ctx context.Context, reservationID string) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationID,
				Value:    reservationID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldIsPaid,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return r.Exist(ctx, filter)
}
