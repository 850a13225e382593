package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anuradha654321/faculty-leave-system/internal/catalog"
	"github.com/Anuradha654321/faculty-leave-system/internal/directory"
	"github.com/Anuradha654321/faculty-leave-system/internal/domain"
	leaveerrors "github.com/Anuradha654321/faculty-leave-system/internal/leave/errors"
	"github.com/Anuradha654321/faculty-leave-system/internal/notification"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actor domain.Actor, req ApplyLeaveRequest) (LeaveResponse, error)
	ApplyPermission(ctx context.Context, actor domain.Actor, req PermissionLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error)
	Cancel(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	types      catalog.Repository
	dir        directory.Repository
	dispatcher notification.Dispatcher
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	types catalog.Repository,
	dir directory.Repository,
	dispatcher notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		types:      types,
		dir:        dir,
		dispatcher: dispatcher,
		logger:     l,
	}
}

func (s *service) Apply(ctx context.Context, actor domain.Actor, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.String("user_id", actor.UserID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)

	if !actor.CanApplyLeave() {
		return LeaveResponse{}, leaveerrors.ErrApplyNotAllowed
	}

	userID, deptID, err := parseActorIDs(actor)
	if err != nil {
		return LeaveResponse{}, err
	}
	typeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrMissingLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return LeaveResponse{}, leaveerrors.ErrMissingReason
	}

	leaveType, err := s.types.FindTypeByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, catalog.ErrLeaveTypeNotFound
		}
		s.logger.Error("apply leave type lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	category := catalog.CategoryOf(leaveType.Name)

	raw := req.DateRange
	if len(req.CasualDates) > 0 {
		raw = strings.Join(req.CasualDates, ",")
	}
	period, err := ResolvePeriod(category, raw, req.TotalDays)
	if err != nil {
		s.logger.Warn("apply leave period rejected",
			zap.String("user_id", actor.UserID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if period.TotalDays <= 0 {
		return LeaveResponse{}, leaveerrors.ErrNonPositiveDays
	}

	l := &LeaveApplication{
		ID:              uuid.New(),
		UserID:          userID,
		DeptID:          deptID,
		LeaveTypeID:     typeID,
		StartDate:       period.StartDate,
		EndDate:         period.EndDate,
		TotalDays:       period.TotalDays,
		Reason:          strings.TrimSpace(req.Reason),
		Status:          StatusPending,
		DocumentPath:    req.DocumentPath,
		ApplicationDate: time.Now().UTC().Truncate(24 * time.Hour),
	}
	adjustments := s.buildAdjustments(l.ID, req.Adjustments)

	recipients, err := s.resolveRecipients(ctx, actor.DeptID, category)
	if err != nil {
		return LeaveResponse{}, err
	}

	if err := s.submit(ctx, actor, l, category, adjustments, notification.LeaveNotice{
		ApplicationID: l.ID,
		ApplicantName: actor.Name,
		LeaveTypeName: leaveType.Name,
		StartDate:     period.StartDate,
		EndDate:       period.EndDate,
		Reason:        l.Reason,
		Recipients:    recipients,
	}); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("application_id", l.ID.String()),
		zap.String("user_id", actor.UserID),
		zap.String("leave_type", leaveType.Name),
		zap.Float64("total_days", period.TotalDays),
		zap.Int("recipients", len(recipients)),
	)
	return mapToResponse(*l, leaveType.Name, adjustments), nil
}

func (s *service) ApplyPermission(ctx context.Context, actor domain.Actor, req PermissionLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply permission requested",
		zap.String("user_id", actor.UserID),
		zap.String("date", req.Date),
		zap.String("slot", req.Slot),
	)

	if !actor.CanApplyLeave() {
		return LeaveResponse{}, leaveerrors.ErrApplyNotAllowed
	}

	userID, deptID, err := parseActorIDs(actor)
	if err != nil {
		return LeaveResponse{}, err
	}

	slot := strings.ToLower(strings.TrimSpace(req.Slot))
	switch slot {
	case "":
		return LeaveResponse{}, leaveerrors.ErrMissingPermissionSlot
	case SlotMorning, SlotEvening:
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidPermissionSlot
	}
	if strings.TrimSpace(req.Reason) == "" {
		return LeaveResponse{}, leaveerrors.ErrMissingReason
	}

	period, err := ResolvePermission(req.Date)
	if err != nil {
		return LeaveResponse{}, err
	}

	leaveType, err := s.types.FindTypeByName(ctx, catalog.PermissionTypeName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, catalog.ErrLeaveTypeNotFound
		}
		s.logger.Error("apply permission type lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveApplication{
		ID:              uuid.New(),
		UserID:          userID,
		DeptID:          deptID,
		LeaveTypeID:     leaveType.ID,
		StartDate:       period.StartDate,
		EndDate:         period.EndDate,
		TotalDays:       period.TotalDays,
		Reason:          strings.TrimSpace(req.Reason),
		Status:          StatusPending,
		IsPermission:    true,
		PermissionSlot:  &slot,
		ApplicationDate: time.Now().UTC().Truncate(24 * time.Hour),
	}

	// Permission leave never reaches the institution admin.
	recipients, err := s.resolveRecipients(ctx, actor.DeptID, catalog.CategoryPermission)
	if err != nil {
		return LeaveResponse{}, err
	}

	if err := s.submit(ctx, actor, l, catalog.CategoryPermission, nil, notification.LeaveNotice{
		ApplicationID:  l.ID,
		ApplicantName:  actor.Name,
		LeaveTypeName:  leaveType.Name,
		StartDate:      period.StartDate,
		EndDate:        period.EndDate,
		Reason:         l.Reason,
		IsPermission:   true,
		PermissionSlot: slot,
		Recipients:     recipients,
	}); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("apply permission success",
		zap.String("application_id", l.ID.String()),
		zap.String("user_id", actor.UserID),
		zap.String("slot", slot),
	)
	return mapToResponse(*l, leaveType.Name, nil), nil
}

// submit runs the transactional part of a submission: the overlap check,
// the balance lock and check, the application and adjustment inserts, and
// the notification fan-out all commit or roll back together.
func (s *service) submit(
	ctx context.Context,
	actor domain.Actor,
	l *LeaveApplication,
	category catalog.Category,
	adjustments []ClassAdjustment,
	notice notification.LeaveNotice,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, actor.UserID, l.StartDate, l.EndDate)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.String("user_id", actor.UserID),
			zap.Time("start_date", l.StartDate),
			zap.Time("end_date", l.EndDate),
		)
		return leaveerrors.ErrOverlappingApplication
	}

	if category != catalog.CategoryPermission {
		balance, err := qtx.FindBalanceForUpdate(ctx, actor.UserID, l.LeaveTypeID.String(), time.Now().Year())
		if err != nil {
			s.logger.Error("submit leave balance lookup failed", zap.Error(err))
			return err
		}
		if balance == nil {
			s.logger.Warn("no balance row for leave type, treating as unconstrained",
				zap.String("user_id", actor.UserID),
				zap.String("leave_type_id", l.LeaveTypeID.String()),
			)
		} else if balance.RemainingDays() < l.TotalDays {
			s.logger.Warn("submit leave insufficient balance",
				zap.String("user_id", actor.UserID),
				zap.Float64("remaining_days", balance.RemainingDays()),
				zap.Float64("requested_days", l.TotalDays),
			)
			return leaveerrors.ErrInsufficientBalance
		}
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return err
	}
	if err := qtx.CreateAdjustments(ctx, adjustments); err != nil {
		s.logger.Error("submit leave adjustments persist failed", zap.Error(err))
		return err
	}

	if err := s.dispatcher.WithTx(tx).Dispatch(ctx, notice); err != nil {
		s.logger.Error("submit leave notification dispatch failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error) {
	apps, err := s.repo.FindAllByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	typeNames, err := s.typeNames(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(apps))
	for i, a := range apps {
		ids[i] = a.ID
	}
	adjustments, err := s.repo.FindAdjustmentsForApplications(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveResponse, len(apps))
	for i, a := range apps {
		resp[i] = mapToResponse(a, typeNames[a.LeaveTypeID], adjustments[a.ID])
	}
	return resp, nil
}

func (s *service) Cancel(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested",
		zap.String("application_id", id),
		zap.String("user_id", actor.UserID),
	)

	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrApplicationNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Scoping the lookup to the caller hides other users' applications
	// behind the same not-found error.
	l, err := qtx.FindByIDAndUser(ctx, actor.UserID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrApplicationNotFound
		}
		s.logger.Error("cancel leave lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !l.IsCancellable() {
		s.logger.Warn("cancel leave rejected by state",
			zap.String("application_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrNotCancellable
	}

	l.Status = StatusCancelled
	if err := qtx.UpdateStatus(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := qtx.CreateHistory(ctx, &LeaveHistory{
		ID:            uuid.New(),
		ApplicationID: l.ID,
		Action:        StatusCancelled,
		ActorID:       actorUUID,
		Note:          "cancelled by applicant",
	}); err != nil {
		s.logger.Error("cancel leave history persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success",
		zap.String("application_id", id),
		zap.String("user_id", actor.UserID),
	)

	typeName := ""
	if lt, err := s.types.FindTypeByID(ctx, l.LeaveTypeID.String()); err == nil {
		typeName = lt.Name
	} else {
		s.logger.Warn("cancel leave type name lookup failed",
			zap.String("leave_type_id", l.LeaveTypeID.String()),
			zap.Error(err),
		)
	}
	return mapToResponse(*l, typeName, nil), nil
}

// buildAdjustments keeps only fully populated coverage entries. Partially
// filled rows are skipped and logged, not rejected.
func (s *service) buildAdjustments(applicationID uuid.UUID, entries []AdjustmentEntry) []ClassAdjustment {
	adjustments := make([]ClassAdjustment, 0, len(entries))
	for i, e := range entries {
		classDate := strings.TrimSpace(e.ClassDate)
		classTime := strings.TrimSpace(e.ClassTime)
		subject := strings.TrimSpace(e.Subject)
		facultyID := strings.TrimSpace(e.AdjustedFacultyID)
		if classDate == "" || classTime == "" || subject == "" || facultyID == "" {
			s.logger.Warn("class adjustment entry incomplete, skipping",
				zap.String("application_id", applicationID.String()),
				zap.Int("entry", i),
			)
			continue
		}

		date, err := time.Parse(dateLayout, classDate)
		if err != nil {
			s.logger.Warn("class adjustment date invalid, skipping",
				zap.String("application_id", applicationID.String()),
				zap.Int("entry", i),
				zap.String("class_date", classDate),
			)
			continue
		}
		faculty, err := uuid.Parse(facultyID)
		if err != nil {
			s.logger.Warn("class adjustment faculty id invalid, skipping",
				zap.String("application_id", applicationID.String()),
				zap.Int("entry", i),
			)
			continue
		}

		adjustments = append(adjustments, ClassAdjustment{
			ID:            uuid.New(),
			ApplicationID: applicationID,
			ClassDate:     date,
			ClassTime:     classTime,
			Subject:       subject,
			AdjustedBy:    faculty,
			Status:        AdjustmentStatusPending,
		})
	}
	return adjustments
}

// resolveRecipients picks the reviewers: the department HOD always, plus
// the institution admin for medical leave.
func (s *service) resolveRecipients(ctx context.Context, deptID string, category catalog.Category) ([]notification.Recipient, error) {
	recipients := make([]notification.Recipient, 0, 2)

	hod, err := s.dir.FindHODByDept(ctx, deptID)
	if err != nil {
		s.logger.Error("hod lookup failed", zap.String("dept_id", deptID), zap.Error(err))
		return nil, err
	}
	if hod != nil {
		recipients = append(recipients, notification.Recipient{
			UserID: hod.ID,
			Email:  hod.Email,
			Name:   hod.FullName(),
		})
	} else {
		s.logger.Warn("no active hod for department", zap.String("dept_id", deptID))
	}

	if category == catalog.CategoryMedical {
		admin, err := s.dir.FindAdmin(ctx)
		if err != nil {
			s.logger.Error("admin lookup failed", zap.Error(err))
			return nil, err
		}
		if admin != nil {
			recipients = append(recipients, notification.Recipient{
				UserID: admin.ID,
				Email:  admin.Email,
				Name:   admin.FullName(),
			})
		} else {
			s.logger.Warn("no active institution admin")
		}
	}

	return recipients, nil
}

func (s *service) typeNames(ctx context.Context) (map[uuid.UUID]string, error) {
	types, err := s.types.FindAllTypes(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}
	return names, nil
}

func parseActorIDs(actor domain.Actor) (userID, deptID uuid.UUID, err error) {
	userID, err = uuid.Parse(actor.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, leaveerrors.ErrApplyNotAllowed
	}
	deptID, err = uuid.Parse(actor.DeptID)
	if err != nil {
		return uuid.Nil, uuid.Nil, leaveerrors.ErrApplyNotAllowed
	}
	return userID, deptID, nil
}

func mapToResponse(l LeaveApplication, typeName string, adjustments []ClassAdjustment) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		LeaveTypeID:     l.LeaveTypeID.String(),
		LeaveTypeName:   typeName,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          l.Status,
		IsPermission:    l.IsPermission,
		PermissionSlot:  l.PermissionSlot,
		DocumentPath:    l.DocumentPath,
		ApplicationDate: l.ApplicationDate.Format(dateLayout),
	}
	if len(adjustments) > 0 {
		resp.Adjustments = make([]AdjustmentResponse, len(adjustments))
		for i, a := range adjustments {
			resp.Adjustments[i] = AdjustmentResponse{
				ID:         a.ID.String(),
				ClassDate:  a.ClassDate.Format(dateLayout),
				ClassTime:  a.ClassTime,
				Subject:    a.Subject,
				AdjustedBy: a.AdjustedBy.String(),
				Status:     a.Status,
				Remarks:    a.Remarks,
			}
		}
	}
	return resp
}
