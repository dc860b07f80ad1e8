package visit

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/Yadlapure/health-care/internal/blobstore"
	"github.com/Yadlapure/health-care/internal/events"
	"github.com/Yadlapure/health-care/internal/identity"
	"github.com/Yadlapure/health-care/internal/shared/contextutil"
	visiterrors "github.com/Yadlapure/health-care/internal/visit/errors"

	"go.uber.org/zap"
)

// CheckInOut checks the employee in when today is untouched and out once
// vitals are recorded. The proof image is stored before anything is saved.
func (s *service) CheckInOut(ctx context.Context, actor Actor, req CheckInOutRequest, img Upload) (resp AttendanceResponse, err error) {
	contextutil.Logger(ctx, s.logger).Debug("check in/out requested",
		zap.String("visit_id", req.VisitID),
		zap.String("employee_id", actor.UserID),
	)

	today := s.clock.Today()
	current, err := s.loadForEmployee(ctx, actor, req.VisitID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	action, err := current.PunchAction(today)
	if err != nil {
		s.metrics.Transition("check_in_out", err)
		s.logger.Warn("check in/out rejected", zap.String("visit_id", req.VisitID), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer func() { s.metrics.Transition(string(action), err) }()

	if img.Empty() {
		return AttendanceResponse{}, visiterrors.ErrImageRequired
	}
	if !validLocation(req.Lat, req.Lng) {
		return AttendanceResponse{}, visiterrors.ErrInvalidLocation
	}

	folder := blobstore.FolderCheckIn
	if action == ActionCheckOut {
		folder = blobstore.FolderCheckOut
	}
	now := s.clock.Now()
	key, err := s.blobs.Put(ctx, blobstore.NewObjectKey(folder, req.VisitID, now), img.Data, path.Ext(img.Filename))
	if err != nil {
		s.logger.Error("check in/out image upload failed",
			zap.String("visit_id", req.VisitID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}
	at := CheckPoint{At: now, Lat: req.Lat, Lng: req.Lng, ImageRef: key}

	v, err := s.writer.Apply(ctx, req.VisitID, func(v *Visit) ([]Change, error) {
		if v.AssignedEmpID != actor.UserID {
			return nil, visiterrors.ErrNotAssignedEmployee
		}
		if action == ActionCheckIn {
			if err := v.CheckIn(today, at); err != nil {
				return nil, err
			}
			return []Change{DayChange(events.VisitCheckedIn, today)}, nil
		}

		out, err := v.CheckOut(today, s.clock.DateOf(v.ToTS), at)
		if err != nil {
			return nil, err
		}
		changes := []Change{DayChange(events.VisitCheckedOut, today)}
		if out.Completed {
			changes = append(changes, Change{EventType: events.VisitCompleted})
		}
		if out.Appended != nil {
			changes = append(changes, DayChange(events.VisitDayAppended, *out.Appended))
		}
		return changes, nil
	})
	if err != nil {
		s.logAttendanceFailure("check in/out", req.VisitID, key, err)
		return AttendanceResponse{}, err
	}

	s.logger.Info("check in/out success",
		zap.String("visit_id", v.VisitID),
		zap.String("action", string(action)),
		zap.String("main_status", string(v.MainStatus)),
	)
	return s.attendanceResponse(ctx, v, action, today), nil
}

func (s *service) UpdateVitals(ctx context.Context, actor Actor, req VitalsRequest, prescriptions []Upload) (resp AttendanceResponse, err error) {
	defer func() { s.metrics.Transition(string(ActionVitals), err) }()
	contextutil.Logger(ctx, s.logger).Debug("update vitals requested",
		zap.String("visit_id", req.VisitID),
		zap.String("employee_id", actor.UserID),
		zap.Int("prescriptions", len(prescriptions)),
	)

	if strings.TrimSpace(req.Notes) == "" {
		return AttendanceResponse{}, visiterrors.ErrNotesRequired
	}

	today := s.clock.Today()
	current, err := s.loadForEmployee(ctx, actor, req.VisitID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if err := current.CanRecordVitals(today); err != nil {
		s.logger.Warn("update vitals rejected", zap.String("visit_id", req.VisitID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	keys := make([]string, 0, len(prescriptions))
	for _, p := range prescriptions {
		if p.Empty() {
			continue
		}
		key, err := s.blobs.Put(ctx, blobstore.NewObjectKey(blobstore.FolderPrescription, req.VisitID, s.clock.Now()), p.Data, path.Ext(p.Filename))
		if err != nil {
			s.logger.Error("update vitals prescription upload failed",
				zap.String("visit_id", req.VisitID),
				zap.Int("uploaded", len(keys)),
				zap.Error(err),
			)
			return AttendanceResponse{}, err
		}
		keys = append(keys, key)
	}

	vitals := Vitals{
		BloodPressure:      strings.TrimSpace(req.BloodPressure),
		Sugar:              strings.TrimSpace(req.Sugar),
		Notes:              strings.TrimSpace(req.Notes),
		PrescriptionImages: keys,
	}
	v, err := s.writer.Apply(ctx, req.VisitID, func(v *Visit) ([]Change, error) {
		if v.AssignedEmpID != actor.UserID {
			return nil, visiterrors.ErrNotAssignedEmployee
		}
		if err := v.RecordVitals(today, vitals); err != nil {
			return nil, err
		}
		return []Change{DayChange(events.VisitVitalsUpdated, today)}, nil
	})
	if err != nil {
		s.logAttendanceFailure("update vitals", req.VisitID, strings.Join(keys, ","), err)
		return AttendanceResponse{}, err
	}

	s.logger.Info("update vitals success", zap.String("visit_id", v.VisitID), zap.Int("prescriptions", len(keys)))
	return s.attendanceResponse(ctx, v, ActionVitals, today), nil
}

func (s *service) loadForEmployee(ctx context.Context, actor Actor, visitID string) (*Visit, error) {
	if visitID == "" {
		return nil, visiterrors.ErrMissingVisitID
	}
	if actor.Role != identity.RoleEmployee {
		return nil, visiterrors.ErrNotAssignedEmployee
	}
	v, err := s.repo.FindByVisitID(ctx, visitID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if v.AssignedEmpID != actor.UserID {
		s.logger.Warn("attendance by unassigned employee",
			zap.String("visit_id", visitID),
			zap.String("employee_id", actor.UserID),
		)
		return nil, visiterrors.ErrNotAssignedEmployee
	}
	return v, nil
}

// logAttendanceFailure records a save that failed after images were stored.
// The orphaned keys are logged so they can be swept from the bucket.
func (s *service) logAttendanceFailure(op, visitID, keys string, err error) {
	fields := []zap.Field{
		zap.String("visit_id", visitID),
		zap.String("orphaned_keys", keys),
		zap.Error(err),
	}
	if isRejection(err) {
		s.logger.Warn(op+" rejected after upload", fields...)
		return
	}
	s.logger.Error(op+" persist failed", fields...)
}

func (s *service) attendanceResponse(ctx context.Context, v *Visit, action Action, today time.Time) AttendanceResponse {
	resp := AttendanceResponse{
		VisitID:    v.VisitID,
		ClientName: identity.DisplayName(s.names(ctx, *v), v.AssignedClientID),
		Action:     action,
		MainStatus: v.MainStatus,
	}
	if day := v.Day(today); day != nil {
		resp.Day = mapDay(*day)
	}
	return resp
}
