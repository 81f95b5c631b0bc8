package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/reservation/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	GetStaleUnguaranteed(ctx context.Context, today time.Time) ([]model.Reservation, error)
	GetArrivalsNotCheckedIn(ctx context.Context, day time.Time) ([]model.Reservation, error)
	GetActiveStay(ctx context.Context, guestName, roomNumber string) (model.Reservation, error)
	ClaimCheckIn(ctx context.Context, id string, now time.Time, operator string) (bool, error)
	MarkNoShowTx(ctx context.Context, sqltx *sqlx.Tx, id string, now time.Time) (bool, error)
	ReleaseStaleTx(ctx context.Context, sqltx *sqlx.Tx, id string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetStaleUnguaranteed returns reservations with no credit card whose
// arrival day has passed without a check-in. These are the ones the
// nightly run releases back to inventory.
func (r *repositoryImpl) GetStaleUnguaranteed(ctx context.Context, today time.Time) ([]model.Reservation, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldHasCreditCard,
				Value:    false,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldArrivalDate,
				Value:    today,
				Operator: gDto.FilterOperatorDateLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldIsCheckedIn,
				Value:    false,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
				ArgName:  "is_checked_in",
			},
			gDto.Filter{
				Field:    model.FieldIsNoShow,
				Value:    false,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
				ArgName:  "is_no_show",
			},
		},
	}

	return r.GetAll(ctx, gDto.QueryParams{}, filter)
}

// GetActiveStay finds the in-house reservation for a checkout, by
// guest name substring or exact room number.
func (r *repositoryImpl) GetActiveStay(ctx context.Context, guestName, roomNumber string) (model.Reservation, error) {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldIsCheckedIn,
			Value:    true,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldCheckedOutAt,
			Operator: gDto.FilterIsNull,
			Table:    model.TableName,
		},
	}

	if guestName != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldGuestName,
			Value:    guestName,
			Operator: gDto.FilterOperatorLike,
			Table:    model.CustomersTable,
		})
	} else {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomNumber,
			Value:    roomNumber,
			Operator: gDto.FilterOperatorEq,
			Table:    model.RoomsTable,
		})
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}

	return r.Get(ctx, filter)
}

// ClaimCheckIn flips the reservation to checked in only while it is
// still pending. A false return means another transition (no-show,
// checkout, deletion) landed since the caller last read the row.
func (r *repositoryImpl) ClaimCheckIn(ctx context.Context, id string, now time.Time, operator string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ClaimCheckIn", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = true, %s = :now, %s = :now, %s = :operator WHERE %s = :id AND %s = false AND %s = false AND %s IS NULL",
		model.TableName, model.FieldIsCheckedIn, model.FieldCheckedInAt, constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.FieldID, model.FieldIsCheckedIn, model.FieldIsNoShow, model.FieldCheckedOutAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := r.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":       id,
		"now":      now,
		"operator": operator,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to claim check-in (%s): %w", model.EntityName, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to claim check-in (%s): %w", model.EntityName, err)
	}

	return rows > 0, nil
}

// MarkNoShowTx flags the reservation as a no-show only while it is
// still pending, so a check-in committed after the nightly scan wins.
// The caller posts the automatic bill only when this claims the row.
func (r *repositoryImpl) MarkNoShowTx(ctx context.Context, sqltx *sqlx.Tx, id string, now time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.MarkNoShowTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = true, %s = :now, %s = :operator WHERE %s = :id AND %s = false AND %s = false",
		model.TableName, model.FieldIsNoShow, constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.FieldID, model.FieldIsCheckedIn, model.FieldIsNoShow,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := sqltx.NamedExecContext(ctx, query, map[string]any{
		"id":       id,
		"now":      now,
		"operator": constant.OperatorSystem,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to mark no-show (%s): %w", model.EntityName, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to mark no-show (%s): %w", model.EntityName, err)
	}

	return rows > 0, nil
}

// ReleaseStaleTx deletes an unguaranteed reservation unless a check-in
// or no-show transition landed since the nightly scan selected it.
func (r *repositoryImpl) ReleaseStaleTx(ctx context.Context, sqltx *sqlx.Tx, id string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ReleaseStaleTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = :id AND %s = false AND %s = false AND %s = false",
		model.TableName, model.FieldID, model.FieldHasCreditCard, model.FieldIsCheckedIn, model.FieldIsNoShow,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := sqltx.NamedExecContext(ctx, query, map[string]any{"id": id})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to release reservation (%s): %w", model.EntityName, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to release reservation (%s): %w", model.EntityName, err)
	}

	return rows > 0, nil
}

// GetArrivalsNotCheckedIn returns reservations that were due to arrive
// on the given day and never showed up. Both the nightly no-show
// billing and the daily report detect no-shows through this predicate.
func (r *repositoryImpl) GetArrivalsNotCheckedIn(ctx context.Context, day time.Time) ([]model.Reservation, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldArrivalDate,
				Value:    day,
				Operator: gDto.FilterOperatorDateEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldIsCheckedIn,
				Value:    false,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
				ArgName:  "is_checked_in",
			},
			gDto.Filter{
				Field:    model.FieldIsNoShow,
				Value:    false,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
				ArgName:  "is_no_show",
			},
		},
	}

	return r.GetAll(ctx, gDto.QueryParams{}, filter)
}
