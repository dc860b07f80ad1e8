package visit

import (
	"errors"
	"strings"

	visiterrors "github.com/Yadlapure/health-care/internal/visit/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	constraintVisitPK       = "visits_pkey"
	constraintEmpOverlap    = "visits_emp_no_overlap"
	constraintClientOverlap = "visits_client_no_overlap"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return visiterrors.ErrVisitNotFound
	}
	if errors.Is(err, ErrStaleVersion) {
		return visiterrors.ErrConcurrentUpdate
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == constraintVisitPK:
			return visiterrors.ErrVisitExists
		case pgErr.Code == "23P01" && pgErr.ConstraintName == constraintEmpOverlap:
			return visiterrors.ErrEmployeeOverlap
		case pgErr.Code == "23P01" && pgErr.ConstraintName == constraintClientOverlap:
			return visiterrors.ErrClientOverlap
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraintVisitPK) {
		return visiterrors.ErrVisitExists
	}

	return err
}
