package visit

import (
	"context"
	"errors"
	"time"

	"github.com/Yadlapure/health-care/internal/blobstore"
	"github.com/Yadlapure/health-care/internal/events"
	"github.com/Yadlapure/health-care/internal/identity"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/shared/apperror"
	"github.com/Yadlapure/health-care/internal/shared/clock"
	"github.com/Yadlapure/health-care/internal/shared/contextutil"
	visiterrors "github.com/Yadlapure/health-care/internal/visit/errors"

	"go.uber.org/zap"
)

// Directory is the part of the identity directory the ledger needs.
type Directory interface {
	Resolve(ctx context.Context, userID string, role identity.Role) (identity.Profile, error)
	ResolveMany(ctx context.Context, userIDs []string) (map[string]identity.Profile, error)
}

//go:generate mockgen -source=visit_service.go -destination=mock/visit_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, adminID string, req AssignRequest) (VisitSummary, error)
	Unassign(ctx context.Context, visitID string) (VisitStatusResponse, error)
	Extend(ctx context.Context, req ExtendRequest) (VisitStatusResponse, error)
	CheckInOut(ctx context.Context, actor Actor, req CheckInOutRequest, img Upload) (AttendanceResponse, error)
	UpdateVitals(ctx context.Context, actor Actor, req VitalsRequest, prescriptions []Upload) (AttendanceResponse, error)
	ListVisits(ctx context.Context, actor Actor) ([]VisitView, error)
	GetByID(ctx context.Context, actor Actor, visitID string) (VisitView, error)
	ImageURLs(ctx context.Context, actor Actor, keys []string) ([]ImageURL, error)
}

type service struct {
	repo      Repository
	writer    Writer
	directory Directory
	blobs     blobstore.Store
	clock     *clock.Clock
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	writer Writer,
	directory Directory,
	blobs blobstore.Store,
	clk *clock.Clock,
	m *metrics.Metrics,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("visit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visit.service")
	}
	if clk == nil {
		clk = clock.New(time.UTC)
	}
	return &service{
		repo:      repo,
		writer:    writer,
		directory: directory,
		blobs:     blobs,
		clock:     clk,
		metrics:   m,
		logger:    l,
	}
}

func (s *service) Assign(ctx context.Context, adminID string, req AssignRequest) (resp VisitSummary, err error) {
	defer func() { s.metrics.Transition("assign", err) }()

	contextutil.Logger(ctx, s.logger).Debug("assign visit requested",
		zap.String("admin_id", adminID),
		zap.String("client_id", req.ClientID),
		zap.String("employee_id", req.EmployeeID),
		zap.Time("from_ts", req.FromTS),
		zap.Time("to_ts", req.ToTS),
	)

	if adminID == "" {
		return VisitSummary{}, apperror.ErrUnauthorized
	}
	from, to := req.FromTS.UTC(), req.ToTS.UTC()
	if to.Before(from) {
		return VisitSummary{}, visiterrors.ErrInvalidWindow
	}
	fromDate := s.clock.DateOf(from)
	if fromDate.Before(s.clock.Today()) {
		return VisitSummary{}, visiterrors.ErrFromInPast
	}
	if !validLocation(req.Lat, req.Lng) {
		return VisitSummary{}, visiterrors.ErrInvalidLocation
	}

	client, err := s.directory.Resolve(ctx, req.ClientID, identity.RoleClient)
	if err != nil {
		s.logger.Warn("assign visit client resolve failed", zap.String("client_id", req.ClientID), zap.Error(err))
		return VisitSummary{}, err
	}
	emp, err := s.directory.Resolve(ctx, req.EmployeeID, identity.RoleEmployee)
	if err != nil {
		s.logger.Warn("assign visit employee resolve failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return VisitSummary{}, err
	}

	if err := s.ensureNoOverlap(ctx, Filter{ClientID: client.UserID}, from, to, visiterrors.ErrClientOverlap); err != nil {
		return VisitSummary{}, err
	}
	if err := s.ensureNoOverlap(ctx, Filter{EmpID: emp.UserID}, from, to, visiterrors.ErrEmployeeOverlap); err != nil {
		return VisitSummary{}, err
	}

	v, revived, err := s.reviveCancelled(ctx, adminID, client.UserID, emp.UserID, from, to, fromDate, req.Lat, req.Lng)
	if err != nil {
		return VisitSummary{}, err
	}
	if !revived {
		v = &Visit{
			AssignedAdminID:  adminID,
			AssignedClientID: client.UserID,
			AssignedEmpID:    emp.UserID,
			FromTS:           from,
			ToTS:             to,
			Lat:              req.Lat,
			Lng:              req.Lng,
			MainStatus:       MainInitiated,
			Details:          []Details{{ForDate: fromDate, DailyStatus: DayInitiated}},
		}
		if err := s.writer.Create(ctx, v, Change{EventType: events.VisitAssigned}); err != nil {
			s.logger.Error("assign visit persist failed", zap.Error(err))
			return VisitSummary{}, err
		}
	}

	contextutil.Logger(ctx, s.logger).Info("assign visit success",
		zap.String("visit_id", v.VisitID),
		zap.String("client_id", client.UserID),
		zap.String("employee_id", emp.UserID),
		zap.Bool("revived", revived),
	)

	return VisitSummary{
		VisitID:      v.VisitID,
		AdminID:      adminID,
		ClientID:     client.UserID,
		ClientName:   client.Name,
		EmployeeID:   emp.UserID,
		EmployeeName: emp.Name,
		FromTS:       v.FromTS,
		ToTS:         v.ToTS,
		Lat:          v.Lat,
		Lng:          v.Lng,
		MainStatus:   v.MainStatus,
		Revived:      revived,
	}, nil
}

// reviveCancelled reuses the newest cancelled slot of the client that overlaps
// the requested window. It reports false when there is none.
func (s *service) reviveCancelled(
	ctx context.Context,
	adminID, clientID, empID string,
	from, to, fromDate time.Time,
	lat, lng float64,
) (*Visit, bool, error) {
	slots, err := s.repo.Find(ctx, Filter{
		ClientID:    clientID,
		Statuses:    []MainStatus{MainCancelled},
		OverlapFrom: &from,
		OverlapTo:   &to,
		NewestFirst: true,
		Limit:       1,
	})
	if err != nil {
		s.logger.Error("assign visit cancelled lookup failed", zap.Error(err))
		return nil, false, err
	}
	if len(slots) == 0 {
		return nil, false, nil
	}

	v, err := s.writer.Apply(ctx, slots[0].VisitID, func(v *Visit) ([]Change, error) {
		if err := v.Revive(adminID, empID, from, to, fromDate, lat, lng); err != nil {
			return nil, err
		}
		return []Change{{EventType: events.VisitReassigned}}, nil
	})
	if err != nil {
		s.logger.Warn("assign visit revive failed", zap.String("visit_id", slots[0].VisitID), zap.Error(err))
		return nil, false, err
	}
	return v, true, nil
}

// ensureNoOverlap answers early with the precise conflict. The writer repeats
// the check under party locks before anything is stored.
func (s *service) ensureNoOverlap(ctx context.Context, f Filter, from, to time.Time, conflict error) error {
	f.ExcludeStatuses = []MainStatus{MainCancelled}
	f.OverlapFrom = &from
	f.OverlapTo = &to
	f.Limit = 1

	found, err := s.repo.Find(ctx, f)
	if err != nil {
		s.logger.Error("visit overlap check failed", zap.Error(err))
		return err
	}
	if len(found) > 0 {
		s.logger.Warn("visit overlap detected",
			zap.String("existing_visit_id", found[0].VisitID),
			zap.String("client_id", f.ClientID),
			zap.String("employee_id", f.EmpID),
		)
		return conflict
	}
	return nil
}

func (s *service) Unassign(ctx context.Context, visitID string) (resp VisitStatusResponse, err error) {
	defer func() { s.metrics.Transition("unassign", err) }()
	s.logger.Debug("unassign visit requested", zap.String("visit_id", visitID))

	today := s.clock.Today()
	v, err := s.writer.Apply(ctx, visitID, func(v *Visit) ([]Change, error) {
		cancelled, err := v.Unassign(today)
		if err != nil {
			return nil, err
		}
		if cancelled {
			return []Change{{EventType: events.VisitCancelled}}, nil
		}
		return []Change{DayChange(events.VisitTerminated, today)}, nil
	})
	if err != nil {
		s.logger.Warn("unassign visit rejected", zap.String("visit_id", visitID), zap.Error(err))
		return VisitStatusResponse{}, err
	}

	s.logger.Info("unassign visit success",
		zap.String("visit_id", v.VisitID),
		zap.String("main_status", string(v.MainStatus)),
	)
	return mapToStatusResponse(*v), nil
}

func (s *service) Extend(ctx context.Context, req ExtendRequest) (resp VisitStatusResponse, err error) {
	defer func() { s.metrics.Transition("extend", err) }()
	s.logger.Debug("extend visit requested", zap.String("visit_id", req.VisitID), zap.Time("to_ts", req.ToTS))

	if req.VisitID == "" {
		return VisitStatusResponse{}, visiterrors.ErrMissingVisitID
	}
	current, err := s.repo.FindByVisitID(ctx, req.VisitID)
	if err != nil {
		return VisitStatusResponse{}, mapRepositoryError(err)
	}

	newTo := req.ToTS.UTC()
	newEnd := s.clock.DateOf(newTo)
	probe := *current
	if err := probe.ExtendTo(newTo, s.clock.DateOf(current.ToTS), newEnd); err != nil {
		return VisitStatusResponse{}, err
	}

	from := current.FromTS
	if err := s.ensureNoOverlap(ctx, Filter{EmpID: current.AssignedEmpID, ExcludeVisitID: current.VisitID}, from, newTo, visiterrors.ErrEmployeeOverlap); err != nil {
		return VisitStatusResponse{}, err
	}
	if err := s.ensureNoOverlap(ctx, Filter{ClientID: current.AssignedClientID, ExcludeVisitID: current.VisitID}, from, newTo, visiterrors.ErrClientOverlap); err != nil {
		return VisitStatusResponse{}, err
	}

	v, err := s.writer.Apply(ctx, req.VisitID, func(v *Visit) ([]Change, error) {
		if err := v.ExtendTo(newTo, s.clock.DateOf(v.ToTS), newEnd); err != nil {
			return nil, err
		}
		return []Change{{EventType: events.VisitExtended}}, nil
	})
	if err != nil {
		s.logger.Warn("extend visit rejected", zap.String("visit_id", req.VisitID), zap.Error(err))
		return VisitStatusResponse{}, err
	}

	s.logger.Info("extend visit success", zap.String("visit_id", v.VisitID), zap.Time("to_ts", v.ToTS))
	return mapToStatusResponse(*v), nil
}

func (s *service) ListVisits(ctx context.Context, actor Actor) ([]VisitView, error) {
	var f Filter
	switch actor.Role {
	case identity.RoleAdmin:
		f.AdminID = actor.UserID
	case identity.RoleClient:
		f.ClientID = actor.UserID
	case identity.RoleEmployee:
		start, end := s.clock.StartOf(s.clock.Today()), s.clock.EndOf(s.clock.Today())
		f.EmpID = actor.UserID
		f.ExcludeStatuses = []MainStatus{MainCancelled}
		f.OverlapFrom = &start
		f.OverlapTo = &end
	default:
		return nil, apperror.ErrForbidden
	}
	if actor.UserID == "" {
		return nil, apperror.ErrUnauthorized
	}

	visits, err := s.repo.Find(ctx, f)
	if err != nil {
		s.logger.Error("list visits failed", zap.String("role", string(actor.Role)), zap.Error(err))
		return nil, err
	}

	profiles := s.names(ctx, visits...)
	res := make([]VisitView, len(visits))
	for i, v := range visits {
		res[i] = mapToView(v, profiles)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, visitID string) (VisitView, error) {
	if visitID == "" {
		return VisitView{}, visiterrors.ErrMissingVisitID
	}
	v, err := s.repo.FindByVisitID(ctx, visitID)
	if err != nil {
		return VisitView{}, mapRepositoryError(err)
	}
	if !isParty(*v, actor) {
		return VisitView{}, visiterrors.ErrNotVisitParty
	}
	return mapToView(*v, s.names(ctx, *v)), nil
}

// ImageURLs signs GET urls for images stored on visits the actor is a party to.
// Unknown visits and foreign keys are reported the same way.
func (s *service) ImageURLs(ctx context.Context, actor Actor, keys []string) ([]ImageURL, error) {
	if len(keys) == 0 {
		return nil, visiterrors.ErrNoImageKeys
	}

	visits := make(map[string]*Visit)
	for _, key := range keys {
		if err := s.ensureImageAccess(ctx, actor, key, visits); err != nil {
			contextutil.Logger(ctx, s.logger).Warn("presign image denied", zap.String("key", key), zap.Error(err))
			return nil, err
		}
	}

	res := make([]ImageURL, 0, len(keys))
	for _, key := range keys {
		u, err := s.blobs.Presign(ctx, key, blobstore.ModeGet)
		if err != nil {
			s.logger.Warn("presign image failed", zap.String("key", key), zap.Error(err))
			return nil, err
		}
		res = append(res, ImageURL{Key: key, URL: u.Get})
	}
	return res, nil
}

func (s *service) ensureImageAccess(ctx context.Context, actor Actor, key string, visits map[string]*Visit) error {
	visitID, ok := blobstore.VisitIDOf(key)
	if !ok {
		return visiterrors.ErrImageNotOwned
	}
	v, seen := visits[visitID]
	if !seen {
		found, err := s.repo.FindByVisitID(ctx, visitID)
		if err != nil {
			if err = mapRepositoryError(err); errors.Is(err, visiterrors.ErrVisitNotFound) {
				return visiterrors.ErrImageNotOwned
			}
			return err
		}
		v = found
		visits[visitID] = v
	}
	if !isParty(*v, actor) || !v.References(key) {
		return visiterrors.ErrImageNotOwned
	}
	return nil
}

// names resolves display names for the parties of the given visits.
// A failing directory degrades to id placeholders.
func (s *service) names(ctx context.Context, visits ...Visit) map[string]identity.Profile {
	ids := make([]string, 0, len(visits)*2)
	for _, v := range visits {
		ids = append(ids, v.AssignedClientID, v.AssignedEmpID)
	}
	if len(ids) == 0 {
		return nil
	}
	profiles, err := s.directory.ResolveMany(ctx, ids)
	if err != nil {
		s.logger.Warn("resolve visit party names failed", zap.Error(err))
		return nil
	}
	return profiles
}

func isParty(v Visit, actor Actor) bool {
	switch actor.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleClient:
		return v.AssignedClientID == actor.UserID
	case identity.RoleEmployee:
		return v.AssignedEmpID == actor.UserID
	}
	return false
}

func validLocation(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func isRejection(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus < 500
}
